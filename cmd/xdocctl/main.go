// xdocctl 是 xdocstore 的命令行工具，对配置的 MongoDB 数据库执行文档存储操作。
//
// 用法:
//
//	xdocctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config     配置文件路径，YAML 或 JSON，包含 mongo 与 log 两节 (默认: xdocstore.yaml)
//	-t, --timeout    单条命令超时时间 (默认: 30s)
//	    --log-level  日志级别，覆盖配置文件中的 log.level (默认: warn)
//
// 命令:
//
//	ping                                   连接并检查服务状态
//	count <coll> [query]                   统计匹配文档数
//	find <coll> [query]                    查询文档（--projection --sort --limit --skip --hint）
//	get <coll> <id>                        按 _id 查询
//	position <coll> <id> [query]           文档在排序结果中的位置（--sort）
//	insert <coll> <doc>                    插入模板渲染的文档
//	set <coll> <json>                      按 _id upsert 文档
//	update <coll> <query> <modifier>       修改文档（--upsert --multi）
//	remove <coll> <query>                  删除匹配文档
//	distinct <coll> <key> [query]          字段的不同取值
//	aggregate <coll> <stage>...            执行聚合管道
//	index <coll> <keys> [options]          创建索引
//	collections exists|create <name>       集合管理
//
// query、modifier、stage、keys、options 均为 mongo shell 风格的模板，例如 "{age: {$gte: 18}}"；
// set 的文档参数为严格 JSON，时间戳写作 {"$date": "..."}，ObjectID 写作 {"$oid": "..."}。
//
// 退出码:
//
//	0: 命令执行成功
//	1: 操作失败（连接失败、服务端错误、文档不存在等）
//	2: 参数错误（缺少参数、未知命令、非法 flag 等）
//
// 示例:
//
//	xdocctl -c app.yaml ping
//	xdocctl find --sort "{age: -1}" --limit 10 users "{age: {\$gte: 18}}"
//	xdocctl get users 65f1c0ffee0000000000beef
//	xdocctl update --multi users "{name: 'ann'}" "{\$inc: {age: 1}}"
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"
)

const (
	defaultConfig   = "xdocstore.yaml"
	defaultTimeout  = 30 * time.Second
	defaultLogLevel = "warn"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandler(cancel)

	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// createApp 创建 CLI 应用。
func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "xdocctl",
		Usage:     "xdocstore 文档存储命令行工具",
		Version:   fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径（YAML/JSON）",
				Value:   defaultConfig,
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Aliases: []string{"t"},
				Usage:   "单条命令超时时间",
				Value:   defaultTimeout,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "日志级别 (debug/info/warn/error)，覆盖配置文件",
				Value: defaultLogLevel,
			},
		},
		Commands: createCommands(),
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，由 run() 统一映射退出码。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(stderr, err)
			}
		},
	}
}

// run 执行命令并返回退出码。
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := createApp(stdout, stderr)
	if err := app.Run(ctx, args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		if isCLIUsageError(err) {
			return 2
		}
		fmt.Fprintf(stderr, "错误: %v\n", err)
		return 1
	}
	return 0
}
