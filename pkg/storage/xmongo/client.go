package xmongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/omeyang/xdocstore/internal/storageopt"
	"github.com/omeyang/xdocstore/pkg/observability/xlog"
	"github.com/omeyang/xdocstore/pkg/observability/xmetrics"
	"github.com/omeyang/xdocstore/pkg/util/xjson"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	componentName = "xmongo"
	dbSystem      = "mongodb"
)

// Client MongoDB 文档存储客户端。
//
// 状态机：Disconnected --Start--> Connected --Stop--> Disconnected。
// Start/Stop 只通过原子指针切换状态，不与并发的数据操作互斥，
// 调用方需要自行串行化生命周期切换。数据操作可被多个 goroutine 并发调用，
// 连接池与单文档原子性由驱动和服务端保证。
type Client struct {
	cfg    Config
	opts   *Options
	logger xlog.Logger
	conv   converter
	dial   dialer

	state atomic.Pointer[session]

	detector      *storageopt.SlowOpDetector[SlowQueryInfo]
	healthCounter storageopt.HealthCounter
	slowCounter   storageopt.SlowOpCounter
	opCounter     storageopt.OpCounter

	closed atomic.Bool
}

// NewClient 校验配置并创建客户端，不建立连接。
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.Logger == nil {
		o.Logger = xlog.Default()
	}
	if o.Codec == nil {
		o.Codec = NewCodec(o.Location)
	}

	logger := o.Logger.With(xlog.Component(componentName), xlog.Database(cfg.DBName))
	slowOpts := o.SlowOpOptions()
	slowOpts.Logger = logger
	detector, err := storageopt.NewSlowOpDetector(slowOpts)
	if err != nil {
		return nil, fmt.Errorf("xmongo: %w", err)
	}

	return &Client{
		cfg:      cfg,
		opts:     o,
		logger:   logger,
		conv:     converter{codec: o.Codec},
		dial:     dialMongo,
		detector: detector,
	}, nil
}

// Config 返回客户端配置。
func (c *Client) Config() Config { return c.cfg }

// Codec 返回文档编解码器，可用于输出与本客户端一致的 JSON。
func (c *Client) Codec() *xjson.Codec { return c.opts.Codec }

// =============================================================================
// 生命周期
// =============================================================================

// Start 建立连接并 Ping 主节点。
//
// 返回 true 表示本次调用建立了新连接；已连接时返回 (false, nil) 并记录 info 日志；
// 失败时返回 (false, err) 并记录 warn 日志，客户端保持断开状态。
func (c *Client) Start(ctx context.Context) (bool, error) {
	if ctx == nil {
		return false, ErrNilContext
	}
	if c.closed.Load() {
		return false, ErrClosed
	}
	if c.state.Load() != nil {
		c.logger.Info(ctx, "xmongo already started")
		return false, nil
	}

	hosts := strings.Join(c.cfg.Hosts(), ",")
	s, err := c.dial(c.cfg.clientOptions(), c.cfg.DBName)
	if err != nil {
		c.logger.Warn(ctx, "xmongo start failed", slog.String("hosts", hosts), xlog.Err(err))
		return false, fmt.Errorf("xmongo start: %w", err)
	}
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		if derr := s.client.Disconnect(context.WithoutCancel(ctx)); derr != nil {
			err = errors.Join(err, derr)
		}
		c.logger.Warn(ctx, "xmongo start failed", slog.String("hosts", hosts), xlog.Err(err))
		return false, fmt.Errorf("xmongo start: %w", err)
	}
	if !c.state.CompareAndSwap(nil, s) {
		// 并发 Start 中的另一方已完成连接
		_ = s.client.Disconnect(context.WithoutCancel(ctx)) //nolint:errcheck // 丢弃多余连接
		return false, nil
	}

	c.logger.Info(ctx, "xmongo started", slog.String("hosts", hosts))
	return true, nil
}

// Stop 断开连接并清除连接状态。未连接时为空操作，可重复调用。
// nil context 替换为 context.Background()。
func (c *Client) Stop(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s := c.state.Swap(nil)
	if s == nil {
		return nil
	}
	if err := s.client.Disconnect(ctx); err != nil {
		c.logger.Warn(ctx, "xmongo stop failed", xlog.Err(err))
		return fmt.Errorf("xmongo stop: %w", err)
	}
	c.logger.Info(ctx, "xmongo stopped")
	return nil
}

// Started 判断是否处于已连接状态。
func (c *Client) Started() bool {
	return c.state.Load() != nil
}

// Close 停止客户端并释放慢查询 worker pool。Close 之后 Start 返回 ErrClosed。
func (c *Client) Close(ctx context.Context) error {
	c.closed.Store(true)
	err := c.Stop(ctx)
	c.detector.Close()
	return err
}

// current 返回当前连接，未连接时返回 ErrNotStarted。
func (c *Client) current() (*session, error) {
	s := c.state.Load()
	if s == nil {
		return nil, ErrNotStarted
	}
	return s, nil
}

// =============================================================================
// 健康检查与统计
// =============================================================================

// Health 通过 Ping 主节点检测连接状态。
func (c *Client) Health(ctx context.Context) (err error) {
	if ctx == nil {
		return ErrNilContext
	}
	s, err := c.current()
	if err != nil {
		return err
	}

	ctx, span := xmetrics.Start(ctx, c.opts.Observer, xmetrics.SpanOptions{
		Component: componentName,
		Operation: "health",
		Kind:      xmetrics.KindClient,
		Attrs:     []xmetrics.Attr{xmetrics.String(xmetrics.AttrDBSystem, dbSystem)},
	})
	defer func() {
		c.healthCounter.Record(err)
		span.End(xmetrics.Result{Err: err})
	}()

	ctx, cancel := storageopt.HealthContext(ctx, c.opts.HealthTimeout)
	defer cancel()

	if err = s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("xmongo health: %w", err)
	}
	return nil
}

// Stats 返回统计信息。
func (c *Client) Stats() Stats {
	st := Stats{
		PingCount:       c.healthCounter.PingCount(),
		PingErrors:      c.healthCounter.PingErrors(),
		Operations:      c.opCounter.Ops(),
		OperationErrors: c.opCounter.Errors(),
		SlowQueries:     c.slowCounter.Count(),
	}
	if s := c.state.Load(); s != nil {
		st.Started = true
		st.SessionsInProgress = s.client.NumberSessionsInProgress()
	}
	return st
}

// =============================================================================
// 数据库级操作
// =============================================================================

// CreateCollection 显式创建集合。
func (c *Client) CreateCollection(ctx context.Context, name string) error {
	return c.run(ctx, "create_collection", name, Query{}, func(ctx context.Context, s *session) error {
		return c.wrap("create_collection", name, s.db.CreateCollection(ctx, name))
	})
}

// CollectionExists 判断集合是否存在。
func (c *Client) CollectionExists(ctx context.Context, name string) (exists bool, err error) {
	err = c.run(ctx, "collection_exists", name, Query{}, func(ctx context.Context, s *session) error {
		names, lerr := s.db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
		if lerr != nil {
			return c.wrap("collection_exists", name, lerr)
		}
		exists = len(names) > 0
		return nil
	})
	return exists, err
}

// =============================================================================
// 操作包装
// =============================================================================

// run 执行一次数据操作：检查参数与连接状态，加兜底超时，开启观测跨度，
// 结束时做慢查询检测与计数。
func (c *Client) run(ctx context.Context, op, coll string, q Query, fn func(ctx context.Context, s *session) error) (err error) {
	if ctx == nil {
		return ErrNilContext
	}
	s, err := c.current()
	if err != nil {
		return err
	}

	ctx, cancel := storageopt.OperationContext(ctx, c.opts.OperationTimeout)
	defer cancel()

	info := SlowQueryInfo{Database: c.cfg.DBName, Collection: coll, Operation: op, Query: q}
	start := time.Now()
	ctx, span := xmetrics.Start(ctx, c.opts.Observer, xmetrics.SpanOptions{
		Component: componentName,
		Operation: op,
		Kind:      xmetrics.KindClient,
		Attrs:     xmetrics.DB(dbSystem, c.cfg.DBName, coll),
	})
	defer func() {
		info.Duration = storageopt.MeasureOperation(start)
		c.opCounter.Record(err)

		var attrs []xmetrics.Attr
		if c.detector.Observe(ctx, info, info.Duration) {
			c.slowCounter.Inc()
			attrs = append(attrs,
				xmetrics.Bool("slow", true),
				xmetrics.Int64("slow_threshold_ms", c.detector.Threshold().Milliseconds()),
			)
		}
		span.End(xmetrics.Result{Err: err, Attrs: attrs})
	}()

	return fn(ctx, s)
}

// wrap 为驱动错误加上操作和集合前缀；唯一索引冲突额外包装 ErrDuplicateKey，
// 无匹配文档转换为 ErrNotFound。
func (c *Client) wrap(op, coll string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("xmongo %s %s.%s: %w: %w", op, c.cfg.DBName, coll, ErrDuplicateKey, err)
	default:
		return fmt.Errorf("xmongo %s %s.%s: %w", op, c.cfg.DBName, coll, err)
	}
}

// render 解析查询模板并代入参数，实现 renderer。
func (c *Client) render(q Query) (any, error) {
	return renderTemplate(q.template, q.params, c.conv.value)
}

// filter 渲染查询并要求结果为文档。
func (c *Client) filter(q Query) (bson.D, error) {
	v, err := c.render(q)
	if err != nil {
		return nil, err
	}
	d, ok := v.(bson.D)
	if !ok {
		return nil, fmt.Errorf("%w: template %q renders to %T", ErrInvalidDocument, q.template, v)
	}
	return d, nil
}

// decode 把驱动返回的文档解码到 target。
func (c *Client) decode(raw bson.D, target any) error {
	return c.opts.Codec.Decode(fromBSON(raw, c.opts.Codec.Location()), target)
}
