package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/omeyang/xdocstore/pkg/observability/xlog"
	"github.com/omeyang/xdocstore/pkg/storage/xmongo"
	"github.com/omeyang/xdocstore/pkg/util/xjson"
)

// document 命令行读写的文档形状。
type document = map[string]any

// usageError 参数错误，对应退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// isCLIUsageError 判断错误是否由 CLI 框架的参数解析产生（未知 flag、非法取值、未知命令等）。
func isCLIUsageError(err error) bool {
	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		return true
	}
	msg := err.Error()
	for _, marker := range []string{
		"flag provided but not defined",
		"invalid value",
		"No help topic",
		"Required flag",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// createCommands 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "ping",
			Usage:  "连接并检查服务状态",
			Action: withSession("ping", 0, 0, cmdPing),
		},
		{
			Name:      "count",
			Usage:     "统计匹配文档数",
			ArgsUsage: "<coll> [query]",
			Action:    withSession("count", 1, 2, cmdCount),
		},
		{
			Name:      "find",
			Usage:     "查询文档",
			ArgsUsage: "<coll> [query]",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "projection", Usage: "字段投影模板，例如 {name: 1}"},
				&cli.StringFlag{Name: "sort", Usage: "排序模板，例如 {age: -1}"},
				&cli.Int64Flag{Name: "limit", Usage: "最大返回条数，未指定时不限制"},
				&cli.Int64Flag{Name: "skip", Usage: "跳过条数"},
				&cli.StringFlag{Name: "hint", Usage: "索引名或索引键模板"},
				&cli.BoolFlag{Name: "count-only", Usage: "只输出在同样条件下的结果条数"},
			},
			Action: withSession("find", 1, 2, cmdFind),
		},
		{
			Name:      "get",
			Usage:     "按 _id 查询",
			ArgsUsage: "<coll> <id>",
			Action:    withSession("get", 2, 2, cmdGet),
		},
		{
			Name:      "position",
			Usage:     "文档在排序结果中的位置，不存在时为 -1",
			ArgsUsage: "<coll> <id> [query]",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "sort", Usage: "排序模板"},
			},
			Action: withSession("position", 2, 3, cmdPosition),
		},
		{
			Name:      "insert",
			Usage:     "插入模板渲染的文档，_id 已存在时失败",
			ArgsUsage: "<coll> <doc>",
			Action:    withSession("insert", 2, 2, cmdInsert),
		},
		{
			Name:      "set",
			Usage:     "按 _id upsert 文档（严格 JSON，@path 从文件读取）",
			ArgsUsage: "<coll> <json|@path>",
			Action:    withSession("set", 2, 2, cmdSet),
		},
		{
			Name:      "update",
			Usage:     "修改匹配文档",
			ArgsUsage: "<coll> <query> <modifier>",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "upsert", Usage: "无匹配文档时插入"},
				&cli.BoolFlag{Name: "multi", Usage: "修改所有匹配文档"},
			},
			Action: withSession("update", 3, 3, cmdUpdate),
		},
		{
			Name:      "remove",
			Usage:     "删除匹配文档",
			ArgsUsage: "<coll> <query>",
			Action:    withSession("remove", 2, 2, cmdRemove),
		},
		{
			Name:      "distinct",
			Usage:     "字段的不同取值",
			ArgsUsage: "<coll> <key> [query]",
			Action:    withSession("distinct", 2, 3, cmdDistinct),
		},
		{
			Name:      "aggregate",
			Usage:     "执行聚合管道",
			ArgsUsage: "<coll> <stage>...",
			Action:    withSession("aggregate", 2, -1, cmdAggregate),
		},
		{
			Name:      "index",
			Usage:     "创建索引",
			ArgsUsage: "<coll> <keys> [options]",
			Action:    withSession("index", 2, 3, cmdIndex),
		},
		{
			Name:  "collections",
			Usage: "集合管理",
			Commands: []*cli.Command{
				{
					Name:      "exists",
					Usage:     "判断集合是否存在",
					ArgsUsage: "<name>",
					Action:    withSession("collections exists", 1, 1, cmdCollectionExists),
				},
				{
					Name:      "create",
					Usage:     "创建集合",
					ArgsUsage: "<name>",
					Action:    withSession("collections create", 1, 1, cmdCollectionCreate),
				},
			},
		},
	}
}

// action 在已连接的会话中执行的命令体。
type action func(ctx context.Context, s *session, cmd *cli.Command) error

// withSession 校验参数个数后建立会话执行 fn，结束时关闭会话。maxArgs 为 -1 表示不限。
func withSession(name string, minArgs, maxArgs int, fn action) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) (err error) {
		if err := checkArgs(cmd, name, minArgs, maxArgs); err != nil {
			return err
		}
		if timeout := cmd.Duration("timeout"); timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		s, err := openSession(ctx, cmd)
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, s.close(context.WithoutCancel(ctx)))
		}()
		return fn(ctx, s, cmd)
	}
}

func checkArgs(cmd *cli.Command, name string, minArgs, maxArgs int) error {
	n := cmd.Args().Len()
	if n < minArgs || (maxArgs >= 0 && n > maxArgs) {
		if cmd.ArgsUsage == "" {
			return &usageError{msg: fmt.Sprintf("%s 不接受参数", name)}
		}
		return &usageError{msg: fmt.Sprintf("用法: xdocctl %s %s", name, cmd.ArgsUsage)}
	}
	return nil
}

// queryArg 第 i 个参数作为查询模板，缺省为匹配所有文档的零值查询。
func queryArg(cmd *cli.Command, i int) xmongo.Query {
	return xmongo.NewQuery(cmd.Args().Get(i))
}

// parseID 解析命令行中的 _id：24 位十六进制视为 ObjectID，整数视为 int64，其余按字符串。
func parseID(s string) any {
	if len(s) == 24 {
		if id, err := bson.ObjectIDFromHex(s); err == nil {
			return id
		}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return s
}

func collection(s *session, cmd *cli.Command) *xmongo.Collection[document] {
	return xmongo.NewCollection[document](s.client, cmd.Args().First())
}

// =============================================================================
// 命令实现
// =============================================================================

func cmdPing(ctx context.Context, s *session, _ *cli.Command) error {
	if err := s.client.Health(ctx); err != nil {
		return err
	}
	cfg := s.client.Config()
	return s.print(document{
		"db":    cfg.DBName,
		"hosts": cfg.Hosts(),
		"stats": s.client.Stats(),
	})
}

func cmdCount(ctx context.Context, s *session, cmd *cli.Command) error {
	n, err := collection(s, cmd).Count(ctx, queryArg(cmd, 1))
	if err != nil {
		return err
	}
	return s.print(document{"count": n})
}

// findOptions 只转发显式指定的 flag。
func findOptions(cmd *cli.Command) *xmongo.FindOptions {
	o := xmongo.NewFindOptions()
	if cmd.IsSet("projection") {
		o.Projection(xmongo.NewQuery(cmd.String("projection")))
	}
	if cmd.IsSet("sort") {
		o.Sort(cmd.String("sort"))
	}
	if cmd.IsSet("limit") {
		o.Limit(cmd.Int64("limit"))
	}
	if cmd.IsSet("skip") {
		o.Skip(cmd.Int64("skip"))
	}
	if cmd.IsSet("hint") {
		o.Hint(cmd.String("hint"))
	}
	return o
}

func cmdFind(ctx context.Context, s *session, cmd *cli.Command) error {
	coll := collection(s, cmd)
	q, opts := queryArg(cmd, 1), findOptions(cmd)

	if cmd.Bool("count-only") {
		n, err := coll.CountFind(ctx, q, opts)
		if err != nil {
			return err
		}
		return s.print(document{"count": n})
	}

	docs, err := coll.Find(ctx, q, opts)
	if err != nil {
		if !errors.Is(err, xjson.ErrMalformedTimestamp) || errors.Is(err, xjson.ErrDecode) {
			return err
		}
		// 时间戳损坏的字段为零值，其余内容照常输出
		s.logger.Warn(ctx, "xdocctl find: malformed timestamps", xlog.Err(err))
	}
	return s.print(docs)
}

func cmdGet(ctx context.Context, s *session, cmd *cli.Command) error {
	doc, err := collection(s, cmd).Get(ctx, parseID(cmd.Args().Get(1)))
	if err != nil {
		return err
	}
	return s.print(doc)
}

func cmdPosition(ctx context.Context, s *session, cmd *cli.Command) error {
	pos, err := collection(s, cmd).CountPosition(ctx, parseID(cmd.Args().Get(1)), queryArg(cmd, 2), cmd.String("sort"))
	if err != nil {
		return err
	}
	return s.print(document{"position": pos})
}

func cmdInsert(ctx context.Context, s *session, cmd *cli.Command) error {
	id, err := collection(s, cmd).InsertQuery(ctx, queryArg(cmd, 1))
	if err != nil {
		return err
	}
	return s.print(document{"inserted_id": id})
}

func cmdSet(ctx context.Context, s *session, cmd *cli.Command) error {
	doc, err := documentArg(s.client.Codec(), cmd.Args().Get(1))
	if err != nil {
		return err
	}
	ok, err := collection(s, cmd).Set(ctx, doc)
	if err != nil {
		return err
	}
	return s.print(document{"affected": ok})
}

// documentArg 解析 set 的文档参数，"@" 开头时从文件读取。
func documentArg(codec *xjson.Codec, arg string) (document, error) {
	var doc document
	var err error
	if path, ok := strings.CutPrefix(arg, "@"); ok {
		err = codec.UnmarshalFile(path, &doc)
	} else {
		err = codec.Unmarshal([]byte(arg), &doc)
	}
	if err != nil {
		return nil, &usageError{msg: fmt.Sprintf("set 的文档不是合法 JSON: %v", err)}
	}
	return doc, nil
}

func cmdUpdate(ctx context.Context, s *session, cmd *cli.Command) error {
	opts := xmongo.NewUpdateOptions().Multi(cmd.Bool("multi"))
	if cmd.IsSet("upsert") {
		opts.Upsert(cmd.Bool("upsert"))
	}
	n, err := collection(s, cmd).Update(ctx, queryArg(cmd, 1), queryArg(cmd, 2), opts)
	if err != nil {
		return err
	}
	return s.print(document{"affected": n})
}

func cmdRemove(ctx context.Context, s *session, cmd *cli.Command) error {
	n, err := collection(s, cmd).Remove(ctx, queryArg(cmd, 1))
	if err != nil {
		return err
	}
	return s.print(document{"removed": n})
}

func cmdDistinct(ctx context.Context, s *session, cmd *cli.Command) error {
	values, err := collection(s, cmd).Distinct(ctx, cmd.Args().Get(1), queryArg(cmd, 2))
	if err != nil {
		return err
	}
	return s.print(values)
}

func cmdAggregate(ctx context.Context, s *session, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	stages := make([]xmongo.Query, 0, len(args)-1)
	for _, stage := range args[1:] {
		stages = append(stages, xmongo.NewQuery(stage))
	}
	docs, err := collection(s, cmd).Aggregate(ctx, stages...)
	if err != nil {
		return err
	}
	return s.print(docs)
}

func cmdIndex(ctx context.Context, s *session, cmd *cli.Command) error {
	name, err := collection(s, cmd).Index(ctx, cmd.Args().Get(1), cmd.Args().Get(2))
	if err != nil {
		return err
	}
	return s.print(document{"index": name})
}

func cmdCollectionExists(ctx context.Context, s *session, cmd *cli.Command) error {
	ok, err := s.client.CollectionExists(ctx, cmd.Args().First())
	if err != nil {
		return err
	}
	return s.print(document{"exists": ok})
}

func cmdCollectionCreate(ctx context.Context, s *session, cmd *cli.Command) error {
	name := cmd.Args().First()
	if err := s.client.CreateCollection(ctx, name); err != nil {
		return err
	}
	return s.print(document{"created": name})
}

// setupSignalHandler 设置信号处理。
// 设计决策: 第一次信号取消正在执行的命令，第二次信号强制退出（退出码 130 = 128 + SIGINT）。
func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()

		<-sigCh
		signal.Stop(sigCh)
		os.Exit(130)
	}()
}
