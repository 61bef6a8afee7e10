package isolate

import (
	"sync"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════
// 容器统计信息
// ═══════════════════════════════════════════════════════════════════════════

// ContainerStats 容器运行时统计信息
type ContainerStats struct {
	// 操作计数
	OpsAdmitted      int64 // 取得准入令牌的操作数
	OpsCompleted     int64 // 运行完毕的操作数
	Errors           int64 // 操作返回错误的次数
	Suspensions      int64 // 挂起点触发次数
	NonisolatedCalls int64 // 绕过准入队列的纯函数调用数

	// 准入等待统计
	TotalWait   time.Duration // 总等待时长（用于计算平均值）
	AverageWait time.Duration // 平均等待时长
	MaxWait     time.Duration // 最大等待时长

	// 执行时长统计
	TotalRun   time.Duration // 总执行时长
	AverageRun time.Duration // 平均执行时长
	MaxRun     time.Duration // 最大执行时长

	// 时间戳
	StartedAt   time.Time // 容器创建时间
	LastOpAt    time.Time // 最后操作时间
	LastErrorAt time.Time // 最后错误时间

	// 错误信息
	LastError error // 最后一个错误
}

// Clone 克隆统计信息（线程安全的快照）
func (s *ContainerStats) Clone() *ContainerStats {
	return &ContainerStats{
		OpsAdmitted:      s.OpsAdmitted,
		OpsCompleted:     s.OpsCompleted,
		Errors:           s.Errors,
		Suspensions:      s.Suspensions,
		NonisolatedCalls: s.NonisolatedCalls,
		TotalWait:        s.TotalWait,
		AverageWait:      s.AverageWait,
		MaxWait:          s.MaxWait,
		TotalRun:         s.TotalRun,
		AverageRun:       s.AverageRun,
		MaxRun:           s.MaxRun,
		StartedAt:        s.StartedAt,
		LastOpAt:         s.LastOpAt,
		LastErrorAt:      s.LastErrorAt,
		LastError:        s.LastError,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// StatsCollector 统计收集器
// ═══════════════════════════════════════════════════════════════════════════

// StatsCollector 线程安全的统计收集器
type StatsCollector struct {
	mu    sync.RWMutex
	stats ContainerStats
}

// NewStatsCollector 创建统计收集器
func NewStatsCollector() *StatsCollector {
	return &StatsCollector{
		stats: ContainerStats{
			StartedAt: time.Now(),
		},
	}
}

// RecordAdmitted 记录一次准入及其等待时长
func (c *StatsCollector) RecordAdmitted(wait time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.OpsAdmitted++
	c.stats.LastOpAt = time.Now()
	c.stats.TotalWait += wait

	if c.stats.OpsAdmitted > 0 {
		c.stats.AverageWait = c.stats.TotalWait / time.Duration(c.stats.OpsAdmitted)
	}
	if wait > c.stats.MaxWait {
		c.stats.MaxWait = wait
	}
}

// RecordCompleted 记录一次操作完成及其执行时长
func (c *StatsCollector) RecordCompleted(run time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.OpsCompleted++
	c.stats.TotalRun += run

	if c.stats.OpsCompleted > 0 {
		c.stats.AverageRun = c.stats.TotalRun / time.Duration(c.stats.OpsCompleted)
	}
	if run > c.stats.MaxRun {
		c.stats.MaxRun = run
	}
}

// RecordError 记录操作错误
func (c *StatsCollector) RecordError(err error) {
	c.mu.Lock()
	c.stats.Errors++
	c.stats.LastError = err
	c.stats.LastErrorAt = time.Now()
	c.mu.Unlock()
}

// RecordSuspension 记录一次挂起
func (c *StatsCollector) RecordSuspension() {
	c.mu.Lock()
	c.stats.Suspensions++
	c.mu.Unlock()
}

// RecordNonisolated 记录一次纯函数调用
func (c *StatsCollector) RecordNonisolated() {
	c.mu.Lock()
	c.stats.NonisolatedCalls++
	c.mu.Unlock()
}

// Stats 获取统计快照
func (c *StatsCollector) Stats() *ContainerStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats.Clone()
}

// Reset 重置统计
func (c *StatsCollector) Reset() {
	c.mu.Lock()
	c.stats = ContainerStats{
		StartedAt: time.Now(),
	}
	c.mu.Unlock()
}
