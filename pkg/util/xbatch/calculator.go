package xbatch

import (
	"context"
	"strings"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/omeyang/ipv6calc/pkg/observability/xlog"
	"github.com/omeyang/ipv6calc/pkg/util/xcidr"
)

// 取值上限，配置层按同样的范围校验。
const (
	// MaxWorkers 并发数上限。
	MaxWorkers = 1024

	// MaxCacheSize 缓存条目上限。
	MaxCacheSize = 1 << 24
)

// Config 定义批量计算配置。
type Config struct {
	// Workers 最大并发数，必须在 [1, 1024] 内。
	Workers int

	// CacheSize 记忆化缓存条目数，0 表示不缓存。
	CacheSize int
}

// Option 定义可选配置函数类型。
type Option func(*options)

type options struct {
	logger         xlog.Logger
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
}

// WithLogger 设置日志记录器，默认不输出日志。
func WithLogger(l xlog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Outcome 单个输入的计算结果。
// Err 非 nil 时 CIDR 为零值。
type Outcome struct {
	Input string
	CIDR  xcidr.CIDR
	Err   error
}

// Stats 缓存统计。
type Stats struct {
	Hits   uint64
	Misses uint64
}

// Calculator 批量 CIDR 计算器，并发安全。
// 必须通过 [New] 创建。
type Calculator struct {
	workers int
	cache   *lru.Cache[string, xcidr.CIDR] // nil 表示不缓存
	logger  xlog.Logger
	tel     *telemetry

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New 创建批量计算器。
// Workers 超出 [1, 1024] 返回 [ErrInvalidWorkers]；
// CacheSize 为负或超过上限返回 [ErrInvalidCacheSize]。
func New(cfg Config, opts ...Option) (*Calculator, error) {
	if cfg.Workers <= 0 || cfg.Workers > MaxWorkers {
		return nil, ErrInvalidWorkers
	}
	if cfg.CacheSize < 0 || cfg.CacheSize > MaxCacheSize {
		return nil, ErrInvalidCacheSize
	}

	o := &options{logger: xlog.Discard()}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	tel, err := newTelemetry(o.meterProvider, o.tracerProvider)
	if err != nil {
		return nil, err
	}

	c := &Calculator{
		workers: cfg.Workers,
		logger:  o.logger.With(xlog.Component("xbatch")),
		tel:     tel,
	}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[string, xcidr.CIDR](cfg.CacheSize)
		if err != nil {
			return nil, err
		}
		c.cache = cache
	}
	return c, nil
}

// Calculate 解析单个 CIDR 文本，结果以去除首尾空白后的输入为键缓存。
// 错误与 [xcidr.Parse] 相同；ctx 已取消时返回 ctx.Err()。
func (c *Calculator) Calculate(ctx context.Context, input string) (xcidr.CIDR, error) {
	if err := ctx.Err(); err != nil {
		return xcidr.CIDR{}, err
	}

	key := strings.TrimSpace(input)
	if c.cache != nil {
		if cidr, ok := c.cache.Get(key); ok {
			c.hits.Add(1)
			c.tel.count(ctx, resultCacheHit)
			c.logger.Debug(ctx, "cache hit", xlog.Input(key))
			return cidr, nil
		}
	}
	c.misses.Add(1)

	cidr, err := xcidr.Parse(key)
	if err != nil {
		c.tel.count(ctx, resultInvalid)
		c.logger.Warn(ctx, "invalid cidr", xlog.Input(key), xlog.Err(err))
		return xcidr.CIDR{}, err
	}
	c.tel.count(ctx, resultOK)
	if c.cache != nil {
		c.cache.Add(key, cidr)
	}
	return cidr, nil
}

// CalculateAll 并发计算全部输入，结果顺序与 inputs 一致。
//
// 单个输入的校验错误记录在对应 [Outcome.Err] 中；
// 返回的 error 只表示 ctx 被取消，此时结果不完整。
func (c *Calculator) CalculateAll(ctx context.Context, inputs []string) (outcomes []Outcome, err error) {
	ctx, finish := c.tel.startBatch(ctx, len(inputs))
	defer func() { finish(countInvalid(outcomes), err) }()

	outcomes = make([]Outcome, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, input := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			cidr, err := c.Calculate(gctx, input)
			if err != nil && gctx.Err() != nil {
				return gctx.Err()
			}
			outcomes[i] = Outcome{Input: input, CIDR: cidr, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	if err := ctx.Err(); err != nil {
		return outcomes, err
	}

	c.logger.Debug(ctx, "batch done", xlog.Count(len(inputs)))
	return outcomes, nil
}

// countInvalid 统计校验失败的结果数。
func countInvalid(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// Stats 返回缓存命中统计。
func (c *Calculator) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}

// Len 返回当前缓存条目数，未启用缓存时为 0。
func (c *Calculator) Len() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}
