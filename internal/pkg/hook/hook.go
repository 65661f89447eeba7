// Package hook 提供具名扩展点（hook point）。
//
// 每个扩展点持有一组按顺序排列的拦截器，调用时由调用方传入默认实现。
// 第一个拦截器最先执行，并拿到指向"剩余链路"的 next，链路末端是默认实现。
// 拦截器可以调用 next、修改参数后调用 next、多次调用 next，或者直接返回自己的结果。
package hook

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrFrozen       = errors.New("hook registry is frozen")
	ErrTypeMismatch = errors.New("hook point type mismatch")
	ErrNoDefault    = errors.New("hook point called without default action")
)

// Action 是扩展点的默认实现，也是传给拦截器的 continuation
type Action[In, Out any] func(ctx context.Context, in In) (Out, error)

// Interceptor 拦截一次调用，next 为剩余链路
type Interceptor[In, Out any] func(ctx context.Context, in In, next Action[In, Out]) (Out, error)

type entry[In, Out any] struct {
	order       int
	seq         int
	interceptor Interceptor[In, Out]
}

// Point 是一个类型化的具名扩展点
type Point[In, Out any] struct {
	name string
	reg  *Registry

	mu      sync.RWMutex
	entries []entry[In, Out]
	seq     int
}

func (p *Point[In, Out]) Name() string {
	return p.name
}

// Len 返回已注册的拦截器数量
func (p *Point[In, Out]) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

// Register 追加拦截器。order 小的在外层；order 相同时按注册先后。
func (p *Point[In, Out]) Register(interceptor Interceptor[In, Out], order int) error {
	if interceptor == nil {
		return fmt.Errorf("hook %q: nil interceptor", p.name)
	}
	if p.reg != nil && p.reg.Frozen() {
		return fmt.Errorf("hook %q: %w", p.name, ErrFrozen)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.seq++
	p.entries = append(p.entries, entry[In, Out]{order: order, seq: p.seq, interceptor: interceptor})
	sort.SliceStable(p.entries, func(i, j int) bool {
		if p.entries[i].order != p.entries[j].order {
			return p.entries[i].order < p.entries[j].order
		}
		return p.entries[i].seq < p.entries[j].seq
	})
	return nil
}

// CallAction 执行拦截器链，链路末端为 def
func (p *Point[In, Out]) CallAction(ctx context.Context, def Action[In, Out], in In) (Out, error) {
	if def == nil {
		var zero Out
		return zero, fmt.Errorf("hook %q: %w", p.name, ErrNoDefault)
	}
	return p.chain(def)(ctx, in)
}

// chain 基于当前快照构造 continuation 链
func (p *Point[In, Out]) chain(def Action[In, Out]) Action[In, Out] {
	p.mu.RLock()
	snapshot := make([]entry[In, Out], len(p.entries))
	copy(snapshot, p.entries)
	p.mu.RUnlock()

	next := def
	for i := len(snapshot) - 1; i >= 0; i-- {
		interceptor := snapshot[i].interceptor
		rest := next
		next = func(ctx context.Context, in In) (Out, error) {
			return interceptor(ctx, in, rest)
		}
	}
	return next
}

type namedPoint interface {
	Name() string
	Len() int
}

// Registry 是进程级的扩展点集合，启动时注册，运行期只读
type Registry struct {
	mu     sync.RWMutex
	points map[string]namedPoint
	frozen bool
}

func NewRegistry() *Registry {
	return &Registry{points: make(map[string]namedPoint)}
}

// Define 返回名为 name 的扩展点，不存在时创建
func Define[In, Out any](r *Registry, name string) (*Point[In, Out], error) {
	r.mu.RLock()
	existing, ok := r.points[name]
	r.mu.RUnlock()
	if ok {
		return asPoint[In, Out](name, existing)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.points[name]; ok {
		return asPoint[In, Out](name, existing)
	}
	p := &Point[In, Out]{name: name, reg: r}
	r.points[name] = p
	return p, nil
}

// Register 向名为 name 的扩展点注册拦截器
func Register[In, Out any](r *Registry, name string, interceptor Interceptor[In, Out], order int) error {
	p, err := Define[In, Out](r, name)
	if err != nil {
		return err
	}
	return p.Register(interceptor, order)
}

func asPoint[In, Out any](name string, np namedPoint) (*Point[In, Out], error) {
	p, ok := np.(*Point[In, Out])
	if !ok {
		return nil, fmt.Errorf("hook %q: %w: registered as %T", name, ErrTypeMismatch, np)
	}
	return p, nil
}

// Freeze 禁止后续注册，启动完成后调用
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Names 返回所有扩展点名称（已排序）
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.points))
	for name := range r.points {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Counts 返回各扩展点的拦截器数量，用于启动日志
func (r *Registry) Counts() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int, len(r.points))
	for name, p := range r.points {
		counts[name] = p.Len()
	}
	return counts
}
