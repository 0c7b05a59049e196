package worker

import (
	"context"
	"log"

	"github.com/pokerjest/workshopTitleTool/internal/event"
	"github.com/pokerjest/workshopTitleTool/internal/renamer"
)

// PathStore 记录重命名后的目录
type PathStore interface {
	UpdateLocalPath(ctx context.Context, itemID uint, path string) error
}

// RenameWorker 在 base title 变化时把本地模组目录改成新名字
type RenameWorker struct {
	Store      PathStore
	LibraryDir string
	Mode       string // link, move or copy
}

// Start 订阅 base_title_changed, 返回 Subscription ID
func (w *RenameWorker) Start(bus event.Bus) string {
	return bus.Subscribe(event.EventBaseTitleChanged, func(e event.Event) {
		change, ok := e.Payload.(event.TitleChange)
		if !ok {
			return
		}
		if err := w.Handle(context.Background(), change); err != nil {
			log.Printf("Worker: Failed to rename %s: %v", change.WorkshopID, err)
		}
	})
}

// Handle 处理一次标题变化, 没有本地目录或没配置 LibraryDir 时什么也不做
func (w *RenameWorker) Handle(ctx context.Context, change event.TitleChange) error {
	if w.LibraryDir == "" || change.LocalPath == "" {
		return nil
	}

	log.Printf("Worker: Base title of %s changed %q -> %q", change.WorkshopID, change.OldBase, change.NewBase)

	dest, err := renamer.Execute(renamer.RenameTask{
		SourcePath: change.LocalPath,
		BaseTitle:  change.NewBase,
		WorkshopID: change.WorkshopID,
		DestBase:   w.LibraryDir,
	}, w.Mode)
	if err != nil {
		return err
	}
	if dest == change.LocalPath {
		return nil
	}

	log.Printf("Worker: Renamed %s to %s", change.LocalPath, dest)
	return w.Store.UpdateLocalPath(ctx, change.ItemID, dest)
}
