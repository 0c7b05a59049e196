package workshop

import "time"

// Details 是单个工坊条目的信息
type Details struct {
	WorkshopID  string
	Title       string
	TimeUpdated time.Time
}

type publishedFileDetailsResponse struct {
	Response struct {
		Result               int               `json:"result"`
		ResultCount          int               `json:"resultcount"`
		PublishedFileDetails []publishedDetail `json:"publishedfiledetails"`
	} `json:"response"`
}

type publishedDetail struct {
	PublishedFileID string `json:"publishedfileid"`
	Result          int    `json:"result"`
	Title           string `json:"title"`
	TimeUpdated     int64  `json:"time_updated"`
}

// resultOK 是 Steam Web API 的 k_EResultOK
const resultOK = 1
