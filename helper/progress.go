package helper

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Progress 终端进度条，可以被多个协程同时调用
type Progress struct {
	total     int
	current   int
	width     int
	title     string
	out       io.Writer
	startTime time.Time
	mu        sync.Mutex
	finished  bool
}

// ProgressOption 进度条选项
type ProgressOption func(*Progress)

// WithWidth 设置进度条宽度
func WithWidth(width int) ProgressOption {
	return func(p *Progress) {
		p.width = width
	}
}

// WithOutput 设置输出位置，默认 os.Stderr
func WithOutput(w io.Writer) ProgressOption {
	return func(p *Progress) {
		p.out = w
	}
}

func NewProgress(title string, total int, opts ...ProgressOption) *Progress {
	p := &Progress{
		total:     total,
		width:     40,
		title:     title,
		out:       os.Stderr,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Update 更新进度到 current，total 可在运行中变化
func (p *Progress) Update(current, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return
	}
	p.current = current
	p.total = total
	p.render()
}

// Finish 完成进度条
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return
	}
	p.current = p.total
	p.finished = true
	p.render()
	fmt.Fprintln(p.out)
}

func (p *Progress) render() {
	if p.total <= 0 {
		return
	}

	percent := float64(p.current) / float64(p.total) * 100
	if percent > 100 {
		percent = 100
	}
	filled := int(percent * float64(p.width) / 100)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)

	line := fmt.Sprintf("\r%s [%s] %.1f%% (%d/%d)", p.title, bar, percent, p.current, p.total)
	if p.finished {
		line += " " + formatDuration(time.Since(p.startTime))
	}
	fmt.Fprint(p.out, line)
}

// formatDuration 格式化时间显示
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	default:
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) - minutes*60
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
}
