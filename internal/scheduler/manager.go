package scheduler

import (
	"context"
	"log"
	"sync"
	"time"
)

// Refresher 是定时任务要调用的同步入口
type Refresher interface {
	Refresh(ctx context.Context) (int, error)
}

type Manager struct {
	refresher Refresher
	interval  time.Duration
	quit      chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	stopOnce  sync.Once
}

func NewManager(refresher Refresher, interval time.Duration) *Manager {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		refresher: refresher,
		interval:  interval,
		quit:      make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (m *Manager) Start() {
	log.Println("Scheduler started...")
	ticker := time.NewTicker(m.interval)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer ticker.Stop()

		// 立即执行一次
		m.CheckUpdates()
		for {
			select {
			case <-ticker.C:
				m.CheckUpdates()
			case <-m.quit:
				return
			}
		}
	}()
}

// Stop 停止定时器并等待正在进行的同步退出
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.quit)
		m.cancel()
		m.wg.Wait()
		log.Println("Scheduler stopped.")
	})
}

func (m *Manager) CheckUpdates() {
	log.Println("Scheduler: Checking updates...")
	n, err := m.refresher.Refresh(m.ctx)
	if err != nil {
		log.Printf("Scheduler Error: Refresh failed: %v", err)
		return
	}
	log.Printf("Scheduler: Refreshed %d items", n)
}
