package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xdocstore/pkg/config/xconf"
	"github.com/omeyang/xdocstore/pkg/observability/xlog"
	"github.com/omeyang/xdocstore/pkg/storage/xmongo"
)

// logSettings 配置文件的 log 节。
//
//	log:
//	  level: info
//	  format: json
//	  file: /var/log/xdocctl.log
type logSettings struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
}

// settings 从配置文件读取的全部设置。
type settings struct {
	Mongo xmongo.Config
	Log   logSettings
}

// loadSettings 读取配置文件的 mongo 与 log 两节，log 节可省略。
func loadSettings(path string) (settings, error) {
	cfg, err := xconf.Load(path, xconf.WithDelim(xmongo.ConfigDelim))
	if err != nil {
		return settings{}, err
	}
	mongoCfg, err := xmongo.FromConfig(cfg)
	if err != nil {
		return settings{}, err
	}
	var ls logSettings
	if cfg.Exists("log") {
		if err := cfg.Unmarshal("log", &ls); err != nil {
			return settings{}, err
		}
	}
	return settings{Mongo: mongoCfg, Log: ls}, nil
}

// resolveLevel 显式传入的 --log-level 优先，其次是配置文件，最后是 flag 默认值。
func resolveLevel(flagValue string, flagSet bool, configured string) string {
	if flagSet || configured == "" {
		return flagValue
	}
	return configured
}

// buildLogger 日志默认写到 stderr，避免与命令输出混在一起。
func buildLogger(ls logSettings, level string, stderr io.Writer) (xlog.Logger, func() error, error) {
	b := xlog.New().
		SetOutput(stderr).
		SetFormat(ls.Format).
		SetLevelString(level).
		SetEnrich(false)
	if ls.File != "" {
		b.SetRotation(ls.File)
	}
	logger, cleanup, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	return logger, cleanup, nil
}

// session 一次命令执行期间的已连接客户端。
type session struct {
	client  *xmongo.Client
	logger  xlog.Logger
	out     io.Writer
	cleanup func() error
}

// openSession 加载配置、构建日志并连接数据库。
func openSession(ctx context.Context, cmd *cli.Command) (*session, error) {
	st, err := loadSettings(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	root := cmd.Root()
	level := resolveLevel(cmd.String("log-level"), cmd.IsSet("log-level"), st.Log.Level)
	logger, cleanup, err := buildLogger(st.Log, level, root.ErrWriter)
	if err != nil {
		return nil, &usageError{msg: fmt.Sprintf("日志配置无效: %v", err)}
	}

	client, err := xmongo.NewClient(st.Mongo, xmongo.WithLogger(logger))
	if err != nil {
		return nil, errors.Join(err, cleanup())
	}
	if _, err := client.Start(ctx); err != nil {
		return nil, errors.Join(err, cleanup())
	}
	return &session{client: client, logger: logger, out: root.Writer, cleanup: cleanup}, nil
}

// close 断开连接并关闭日志文件。
func (s *session) close(ctx context.Context) error {
	return errors.Join(s.client.Close(ctx), s.cleanup())
}

// print 以缩进 JSON 输出 v，时间戳与 ObjectID 的格式与存储一致。
func (s *session) print(v any) error {
	out, err := s.client.Codec().PrettyE(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.out, out)
	return err
}
