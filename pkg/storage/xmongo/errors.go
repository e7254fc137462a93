package xmongo

import "errors"

// =============================================================================
// 生命周期与参数错误
// =============================================================================

var (
	// ErrNilClient 表示传入的客户端为 nil。
	ErrNilClient = errors.New("xmongo: nil client")

	// ErrNilContext 表示传入的 context 为 nil。
	// Stop 和 Close 是例外：nil context 替换为 context.Background()。
	ErrNilContext = errors.New("xmongo: context must not be nil")

	// ErrNotStarted 表示客户端尚未 Start 或已经 Stop。
	ErrNotStarted = errors.New("xmongo: client not started")

	// ErrClosed 表示客户端已 Close，不能再次 Start。
	ErrClosed = errors.New("xmongo: client closed")

	// ErrNoServers 表示配置中没有任何服务器地址。
	ErrNoServers = errors.New("xmongo: no servers configured")

	// ErrEmptyDBName 表示配置中缺少数据库名。
	ErrEmptyDBName = errors.New("xmongo: empty database name")

	// ErrInvalidPort 表示服务器端口超出 1-65535。
	ErrInvalidPort = errors.New("xmongo: invalid server port")

	// ErrNoCollectionName 表示集合名为空且无法从文档类型推导。
	ErrNoCollectionName = errors.New("xmongo: cannot derive collection name")
)

// =============================================================================
// 操作错误
// =============================================================================

var (
	// ErrNotFound 表示没有匹配的文档。
	ErrNotFound = errors.New("xmongo: document not found")

	// ErrDuplicateKey 表示写入违反唯一索引。错误链中同时保留驱动原始错误。
	ErrDuplicateKey = errors.New("xmongo: duplicate key")

	// ErrEmptyDocs 表示批量操作的文档列表为空。
	ErrEmptyDocs = errors.New("xmongo: empty documents")

	// ErrInvalidDocument 表示值无法编码为文档（例如标量或序列）。
	ErrInvalidDocument = errors.New("xmongo: value is not a document")

	// ErrInvalidIndex 表示索引键或索引选项无效。
	ErrInvalidIndex = errors.New("xmongo: invalid index definition")
)

// =============================================================================
// 查询模板错误
// =============================================================================

var (
	// ErrTemplateSyntax 表示查询模板无法解析。具体位置见 *TemplateError。
	ErrTemplateSyntax = errors.New("xmongo: template syntax error")

	// ErrTemplateParams 表示占位符数量与参数数量不一致。
	ErrTemplateParams = errors.New("xmongo: template parameter mismatch")
)
