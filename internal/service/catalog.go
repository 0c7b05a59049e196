package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pokerjest/workshopTitleTool/internal/event"
	"github.com/pokerjest/workshopTitleTool/internal/model"
	"github.com/pokerjest/workshopTitleTool/internal/parser"
	"github.com/pokerjest/workshopTitleTool/internal/workshop"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrItemNotFound = errors.New("workshop item not found")
	ErrInvalidItem  = errors.New("workshop item requires a workshop id")
)

// Steam 一次请求最多查询的条目数
const refreshBatchSize = 100

// 每处理这么多条目发一次进度事件
const progressEvery = 100

// ImportItem 是导入时的一条原始记录
type ImportItem struct {
	WorkshopID  string    `json:"workshop_id"`
	Title       string    `json:"title"`
	TimeUpdated time.Time `json:"time_updated"`
	LocalPath   string    `json:"local_path"`
	Tracked     bool      `json:"tracked"`
}

// DuplicateGroup 是共用同一个 base title 的一组条目
type DuplicateGroup struct {
	BaseTitle string               `json:"base_title"`
	Items     []model.WorkshopItem `json:"items"`
}

type CatalogService struct {
	DB      *gorm.DB
	Canon   *parser.Canonicalizer
	Fetcher workshop.Fetcher
	Bus     event.Bus
	Workers int
}

func NewCatalogService(db *gorm.DB, canon *parser.Canonicalizer, fetcher workshop.Fetcher, bus event.Bus) *CatalogService {
	if canon == nil {
		canon = parser.NewCanonicalizer(nil)
	}
	if bus == nil {
		bus = event.GlobalBus
	}
	return &CatalogService{
		DB:      db,
		Canon:   canon,
		Fetcher: fetcher,
		Bus:     bus,
		Workers: 8,
	}
}

// Import 规范化标题并按 WorkshopID 写入 (存在则更新)
func (s *CatalogService) Import(ctx context.Context, items []ImportItem) ([]model.WorkshopItem, error) {
	saved, changes, _, err := s.upsert(ctx, items)
	if err != nil {
		return nil, err
	}
	for _, c := range changes {
		s.Bus.Publish(event.EventBaseTitleChanged, c)
	}
	return saved, nil
}

// 导入时允许更新的列
var upsertColumns = []string{"title", "base_title", "time_updated", "local_path", "tracked", "updated_at", "deleted_at"}

// upsert 写入一批条目, 返回保存后的条目, 需要通知的改名, 以及 base title 变化的条目数
func (s *CatalogService) upsert(ctx context.Context, items []ImportItem) ([]model.WorkshopItem, []event.TitleChange, int, error) {
	for _, it := range items {
		if strings.TrimSpace(it.WorkshopID) == "" {
			return nil, nil, 0, ErrInvalidItem
		}
	}

	saved := make([]model.WorkshopItem, 0, len(items))
	var changes []event.TitleChange
	changed := 0

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, it := range items {
			var existing model.WorkshopItem
			res := tx.Where("workshop_id = ?", it.WorkshopID).Limit(1).Find(&existing)
			if res.Error != nil {
				return fmt.Errorf("lookup %s: %w", it.WorkshopID, res.Error)
			}
			found := res.RowsAffected > 0

			row := model.WorkshopItem{
				WorkshopID:  it.WorkshopID,
				Title:       it.Title,
				BaseTitle:   s.Canon.BaseTitle(it.Title),
				TimeUpdated: it.TimeUpdated,
				LocalPath:   it.LocalPath,
				Tracked:     it.Tracked,
			}
			if found {
				// 导入里缺省的字段沿用已有的值
				if row.TimeUpdated.IsZero() {
					row.TimeUpdated = existing.TimeUpdated
				}
				if row.LocalPath == "" {
					row.LocalPath = existing.LocalPath
				}
				row.Tracked = row.Tracked || existing.Tracked

				if existing.BaseTitle != row.BaseTitle {
					changed++
					if existing.BaseTitle != "" {
						changes = append(changes, event.TitleChange{
							ItemID:     existing.ID,
							WorkshopID: existing.WorkshopID,
							OldBase:    existing.BaseTitle,
							NewBase:    row.BaseTitle,
							LocalPath:  row.LocalPath,
						})
					}
				}
			}

			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "workshop_id"}},
				DoUpdates: clause.AssignmentColumns(upsertColumns),
			}).Create(&row).Error; err != nil {
				return fmt.Errorf("upsert %s: %w", it.WorkshopID, err)
			}

			// ON CONFLICT 更新时 row.ID 不可靠, 重新读一次
			var item model.WorkshopItem
			if err := tx.Where("workshop_id = ?", it.WorkshopID).First(&item).Error; err != nil {
				return fmt.Errorf("reload %s: %w", it.WorkshopID, err)
			}
			saved = append(saved, item)
		}
		return nil
	})
	if err != nil {
		return nil, nil, 0, err
	}
	return saved, changes, changed, nil
}

// Recanonicalize 用当前词典重新计算所有条目的 base title, 返回变化的条目数
func (s *CatalogService) Recanonicalize(ctx context.Context) (int, error) {
	var items []model.WorkshopItem
	if err := s.DB.WithContext(ctx).Find(&items).Error; err != nil {
		return 0, fmt.Errorf("failed to load items: %w", err)
	}

	bases := make([]string, len(items))
	var done int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())
	for i := range items {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			bases[i] = s.Canon.BaseTitle(items[i].Title)
			if n := atomic.AddInt64(&done, 1); n%progressEvery == 0 {
				s.Bus.Publish(event.EventSyncProgress, event.SyncProgress{Done: int(n), Total: len(items)})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var changes []event.TitleChange
	changed := 0
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range items {
			if items[i].BaseTitle == bases[i] {
				continue
			}
			changed++
			if items[i].BaseTitle != "" {
				changes = append(changes, event.TitleChange{
					ItemID:     items[i].ID,
					WorkshopID: items[i].WorkshopID,
					OldBase:    items[i].BaseTitle,
					NewBase:    bases[i],
					LocalPath:  items[i].LocalPath,
				})
			}
			if err := tx.Model(&items[i]).Update("base_title", bases[i]).Error; err != nil {
				return fmt.Errorf("update %s: %w", items[i].WorkshopID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, c := range changes {
		s.Bus.Publish(event.EventBaseTitleChanged, c)
	}
	s.Bus.Publish(event.EventSyncComplete, event.SyncProgress{Done: len(items), Total: len(items), Changed: changed})
	log.Printf("CatalogService: Recanonicalized %d items, %d changed", len(items), changed)
	return changed, nil
}

// Refresh 从工坊拉取所有 Tracked 条目的最新标题, 返回拉取到的条目数
func (s *CatalogService) Refresh(ctx context.Context) (int, error) {
	if s.Fetcher == nil {
		return 0, errors.New("workshop client not configured")
	}

	var ids []string
	if err := s.DB.WithContext(ctx).Model(&model.WorkshopItem{}).
		Where("tracked = ?", true).Order("id asc").Pluck("workshop_id", &ids).Error; err != nil {
		return 0, fmt.Errorf("failed to load tracked items: %w", err)
	}

	total, changed := 0, 0
	for start := 0; start < len(ids); start += refreshBatchSize {
		end := start + refreshBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		details, err := s.Fetcher.GetDetails(ctx, ids[start:end])
		if err != nil {
			return total, err
		}

		batch := make([]ImportItem, 0, len(details))
		for _, d := range details {
			batch = append(batch, ImportItem{
				WorkshopID:  d.WorkshopID,
				Title:       d.Title,
				TimeUpdated: d.TimeUpdated,
				Tracked:     true,
			})
		}
		saved, changes, n, err := s.upsert(ctx, batch)
		if err != nil {
			return total, err
		}
		for _, c := range changes {
			s.Bus.Publish(event.EventBaseTitleChanged, c)
		}
		total += len(saved)
		changed += n
		s.Bus.Publish(event.EventSyncProgress, event.SyncProgress{Done: end, Total: len(ids), Changed: changed})
	}

	if err := s.setLastSync(ctx, time.Now()); err != nil {
		return total, err
	}
	s.Bus.Publish(event.EventSyncComplete, event.SyncProgress{Done: len(ids), Total: len(ids), Changed: changed})
	log.Printf("CatalogService: Refreshed %d items, %d changed", total, changed)
	return total, nil
}

// Duplicates 找出 base title 相同的条目
func (s *CatalogService) Duplicates(ctx context.Context) ([]DuplicateGroup, error) {
	var titles []string
	err := s.DB.WithContext(ctx).Model(&model.WorkshopItem{}).
		Select("base_title").
		Where("base_title != ''").
		Group("base_title").
		Having("count(*) > 1").
		Order("base_title asc").
		Pluck("base_title", &titles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group items: %w", err)
	}

	groups := make([]DuplicateGroup, 0, len(titles))
	for _, t := range titles {
		var items []model.WorkshopItem
		if err := s.DB.WithContext(ctx).Where("base_title = ?", t).Order("id asc").Find(&items).Error; err != nil {
			return nil, fmt.Errorf("failed to load group %q: %w", t, err)
		}
		groups = append(groups, DuplicateGroup{BaseTitle: t, Items: items})
	}
	return groups, nil
}

func (s *CatalogService) Get(ctx context.Context, workshopID string) (*model.WorkshopItem, error) {
	var item model.WorkshopItem
	err := s.DB.WithContext(ctx).Where("workshop_id = ?", workshopID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CatalogService) List(ctx context.Context, limit int) ([]model.WorkshopItem, error) {
	q := s.DB.WithContext(ctx).Order("base_title asc, id asc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var items []model.WorkshopItem
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateLocalPath 记录重命名后的目录
func (s *CatalogService) UpdateLocalPath(ctx context.Context, itemID uint, path string) error {
	res := s.DB.WithContext(ctx).Model(&model.WorkshopItem{}).Where("id = ?", itemID).Update("local_path", path)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// LastSync 返回上次 Refresh 成功的时间, 从未同步过时为零值
func (s *CatalogService) LastSync(ctx context.Context) (time.Time, error) {
	var cfg model.GlobalConfig
	err := s.DB.WithContext(ctx).Where(&model.GlobalConfig{Key: model.ConfigKeyLastSync}).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, cfg.Value)
}

func (s *CatalogService) setLastSync(ctx context.Context, t time.Time) error {
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&model.GlobalConfig{Key: model.ConfigKeyLastSync, Value: t.UTC().Format(time.RFC3339)}).Error
}

func (s *CatalogService) workers() int {
	if s.Workers < 1 {
		return 1
	}
	return s.Workers
}
