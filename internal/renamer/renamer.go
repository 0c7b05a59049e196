package renamer

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// RenameTask 定义重命名任务参数
type RenameTask struct {
	SourcePath string // 当前的模组目录
	BaseTitle  string // 规范化后的标题
	WorkshopID string // publishedfileid, 用来保证目录名唯一
	DestBase   string // 目标根目录 (如 "/srv/mods")
}

// 文件系统不允许的字符
var invalidChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// FolderName 生成目标目录名: "<标题> [<ID>]"
func FolderName(baseTitle, workshopID string) string {
	name := strings.TrimSpace(invalidChars.ReplaceAllString(baseTitle, "_"))
	// Windows 不接受以点或空格结尾的目录
	name = strings.TrimRight(name, ". ")
	if name == "" {
		return workshopID
	}
	if workshopID == "" {
		return name
	}
	return fmt.Sprintf("%s [%s]", name, workshopID)
}

// Execute 执行重命名/链接/复制, 返回目标路径
// mode: "link", "move", "copy"
func Execute(task RenameTask, mode string) (string, error) {
	if task.SourcePath == "" {
		return "", fmt.Errorf("rename %s: empty source path", task.WorkshopID)
	}
	if err := os.MkdirAll(task.DestBase, 0755); err != nil {
		return "", err
	}

	destPath := filepath.Join(task.DestBase, FolderName(task.BaseTitle, task.WorkshopID))
	if filepath.Clean(task.SourcePath) == destPath {
		return destPath, nil
	}
	if _, err := os.Lstat(destPath); err == nil {
		return "", fmt.Errorf("rename %s: target %s already exists", task.WorkshopID, destPath)
	}

	var err error
	switch mode {
	case "link":
		err = os.Symlink(task.SourcePath, destPath)
	case "copy":
		err = copyTree(task.SourcePath, destPath)
	default: // default to move
		err = os.Rename(task.SourcePath, destPath)
	}
	if err != nil {
		return "", err
	}
	return destPath, nil
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		switch {
		case d.IsDir():
			return os.MkdirAll(target, 0755)
		case d.Type()&fs.ModeSymlink != 0:
			// 链接按原样重建, 不跟进去
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		case !d.Type().IsRegular():
			return nil
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
