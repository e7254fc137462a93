package xmongo

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces_test.go -package=xmongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// =============================================================================
// 内部接口定义 - 用于依赖注入和测试
// =============================================================================

// clientOperations 定义客户端级别操作接口。
// *mongo.Client 实现此接口。
type clientOperations interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
	Disconnect(ctx context.Context) error
	NumberSessionsInProgress() int
}

// databaseOperations 定义数据库级别操作接口。
type databaseOperations interface {
	Name() string
	Collection(name string) collectionOperations
	CreateCollection(ctx context.Context, name string, opts ...options.Lister[options.CreateCollectionOptions]) error
	ListCollectionNames(ctx context.Context, filter any, opts ...options.Lister[options.ListCollectionsOptions]) ([]string, error)
}

// collectionOperations 定义集合级别操作接口。
// 除 CreateIndex 外与 *mongo.Collection 的方法签名一致。
type collectionOperations interface {
	CountDocuments(ctx context.Context, filter any, opts ...options.Lister[options.CountOptions]) (int64, error)
	Find(ctx context.Context, filter any, opts ...options.Lister[options.FindOptions]) (*mongo.Cursor, error)
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	FindOneAndUpdate(ctx context.Context, filter, update any, opts ...options.Lister[options.FindOneAndUpdateOptions]) *mongo.SingleResult
	FindOneAndDelete(ctx context.Context, filter any, opts ...options.Lister[options.FindOneAndDeleteOptions]) *mongo.SingleResult
	InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
	ReplaceOne(ctx context.Context, filter, replacement any, opts ...options.Lister[options.ReplaceOptions]) (*mongo.UpdateResult, error)
	UpdateOne(ctx context.Context, filter, update any, opts ...options.Lister[options.UpdateOneOptions]) (*mongo.UpdateResult, error)
	UpdateMany(ctx context.Context, filter, update any, opts ...options.Lister[options.UpdateManyOptions]) (*mongo.UpdateResult, error)
	DeleteMany(ctx context.Context, filter any, opts ...options.Lister[options.DeleteManyOptions]) (*mongo.DeleteResult, error)
	BulkWrite(ctx context.Context, models []mongo.WriteModel, opts ...options.Lister[options.BulkWriteOptions]) (*mongo.BulkWriteResult, error)
	Distinct(ctx context.Context, fieldName string, filter any, opts ...options.Lister[options.DistinctOptions]) *mongo.DistinctResult
	Aggregate(ctx context.Context, pipeline any, opts ...options.Lister[options.AggregateOptions]) (*mongo.Cursor, error)
	CreateIndex(ctx context.Context, model mongo.IndexModel) (string, error)
}

// cursorOperations 定义游标操作接口。
// *mongo.Cursor 实现此接口。
type cursorOperations interface {
	Next(ctx context.Context) bool
	Decode(val any) error
	Err() error
	Close(ctx context.Context) error
}

// 编译时检查。
var (
	_ clientOperations = (*mongo.Client)(nil)
	_ cursorOperations = (*mongo.Cursor)(nil)
)

// =============================================================================
// 适配器 - 将驱动类型适配为内部接口
// =============================================================================

// databaseAdapter 将 *mongo.Database 适配为 databaseOperations 接口。
type databaseAdapter struct {
	db *mongo.Database
}

func (a *databaseAdapter) Name() string {
	return a.db.Name()
}

func (a *databaseAdapter) Collection(name string) collectionOperations {
	return &collectionAdapter{Collection: a.db.Collection(name)}
}

func (a *databaseAdapter) CreateCollection(ctx context.Context, name string, opts ...options.Lister[options.CreateCollectionOptions]) error {
	return a.db.CreateCollection(ctx, name, opts...)
}

func (a *databaseAdapter) ListCollectionNames(ctx context.Context, filter any, opts ...options.Lister[options.ListCollectionsOptions]) ([]string, error) {
	return a.db.ListCollectionNames(ctx, filter, opts...)
}

// collectionAdapter 将 *mongo.Collection 适配为 collectionOperations 接口。
// 嵌入 *mongo.Collection 复用签名一致的方法，只补充 CreateIndex。
type collectionAdapter struct {
	*mongo.Collection
}

func (a *collectionAdapter) CreateIndex(ctx context.Context, model mongo.IndexModel) (string, error) {
	return a.Indexes().CreateOne(ctx, model)
}

// dialer 建立连接并返回会话。测试中替换为 mock。
type dialer func(opts *options.ClientOptions, dbName string) (*session, error)

// session 一次 Start 建立的连接状态。
type session struct {
	client clientOperations
	db     databaseOperations
}

// dialMongo 使用驱动建立连接。mongo.Connect 不做网络往返，连通性由 Start 中的 Ping 确认。
func dialMongo(opts *options.ClientOptions, dbName string) (*session, error) {
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, err
	}
	return &session{
		client: client,
		db:     &databaseAdapter{db: client.Database(dbName)},
	}, nil
}
