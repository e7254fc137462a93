package xmongo

import (
	"fmt"
	"net"
	"slices"
	"strconv"
	"time"

	"github.com/omeyang/xdocstore/pkg/config/xconf"

	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/writeconcern"
)

const (
	// ConfigKey 配置文件中 MongoDB 配置所在的键。
	ConfigKey = "mongo"

	// ConfigDelim 加载配置使用的键路径分隔符。
	// 主机名含 "."，使用 "/" 避免 servers 下的主机名被拆成嵌套键。
	ConfigDelim = "/"

	// authMechanism 与服务端约定的认证机制。
	authMechanism = "SCRAM-SHA-1"
)

// Config MongoDB 连接配置。
//
//	mongo:
//	  db_name: orders
//	  servers:
//	    db1.example.com: 27017
//	    db2.example.com: 27017
//	  username: app
//	  password: secret
//	  auth_db: admin
type Config struct {
	// DBName 数据库名，必填。
	DBName string `koanf:"db_name"`

	// Servers 主机到端口的映射，至少一项。
	Servers map[string]int `koanf:"servers"`

	// Username 为空时不做认证。
	Username string `koanf:"username"`
	Password string `koanf:"password"`

	// AuthDB 认证数据库，为空时由驱动使用默认值（admin）。
	AuthDB string `koanf:"auth_db"`

	// AppName 上报给服务端的应用名（可选）。
	AppName string `koanf:"app_name"`

	// ConnectTimeout 建立连接超时，零值使用驱动默认值。
	ConnectTimeout time.Duration `koanf:"connect_timeout"`

	// ServerSelectionTimeout 选择服务器超时，零值使用驱动默认值。
	ServerSelectionTimeout time.Duration `koanf:"server_selection_timeout"`

	// MaxPoolSize 连接池上限，零值使用驱动默认值。
	MaxPoolSize uint64 `koanf:"max_pool_size"`
}

// Validate 校验必填项与端口范围。
func (c Config) Validate() error {
	if c.DBName == "" {
		return ErrEmptyDBName
	}
	if len(c.Servers) == 0 {
		return ErrNoServers
	}
	for host, port := range c.Servers {
		if host == "" {
			return ErrNoServers
		}
		if port < 1 || port > 65535 {
			return fmt.Errorf("%w: %s:%d", ErrInvalidPort, host, port)
		}
	}
	return nil
}

// Hosts 返回排序后的 host:port 列表。IPv6 地址自动加方括号。
func (c Config) Hosts() []string {
	hosts := make([]string, 0, len(c.Servers))
	for host, port := range c.Servers {
		hosts = append(hosts, net.JoinHostPort(host, strconv.Itoa(port)))
	}
	slices.Sort(hosts)
	return hosts
}

// clientOptions 构建驱动选项：地址列表、SCRAM-SHA-1 凭证（有用户名时）和 w:1 写关注。
func (c Config) clientOptions() *options.ClientOptions {
	opts := options.Client().
		SetHosts(c.Hosts()).
		SetWriteConcern(writeconcern.W1())
	if c.Username != "" {
		opts.SetAuth(options.Credential{
			AuthMechanism: authMechanism,
			AuthSource:    c.AuthDB,
			Username:      c.Username,
			Password:      c.Password,
		})
	}
	if c.AppName != "" {
		opts.SetAppName(c.AppName)
	}
	if c.ConnectTimeout > 0 {
		opts.SetConnectTimeout(c.ConnectTimeout)
	}
	if c.ServerSelectionTimeout > 0 {
		opts.SetServerSelectionTimeout(c.ServerSelectionTimeout)
	}
	if c.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(c.MaxPoolSize)
	}
	return opts
}

// LoadConfig 从 YAML/JSON 文件的 mongo 节加载配置并校验。
func LoadConfig(path string) (Config, error) {
	cfg, err := xconf.Load(path, xconf.WithDelim(ConfigDelim))
	if err != nil {
		return Config{}, err
	}
	return FromConfig(cfg)
}

// ParseConfig 从字节数据的 mongo 节解析配置并校验。
func ParseConfig(data []byte, format xconf.Format) (Config, error) {
	cfg, err := xconf.Parse(data, format, xconf.WithDelim(ConfigDelim))
	if err != nil {
		return Config{}, err
	}
	return FromConfig(cfg)
}

// FromConfig 从已加载配置的 mongo 节读取并校验，配置需使用 ConfigDelim 作为分隔符加载。
// 适用于同一个文件中还有其他配置节的场景。
func FromConfig(cfg *xconf.Config) (Config, error) {
	var c Config
	if err := cfg.Unmarshal(ConfigKey, &c); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
