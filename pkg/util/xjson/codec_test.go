package xjson

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2020, 1, 2, 3, 4, 5, 6_000_000, time.UTC)

type Base struct {
	ID string `json:"id"`
}

type lineItem struct {
	SKU string    `json:"sku"`
	At  time.Time `json:"at"`
}

type order struct {
	Base
	Customer string     `json:"customer"`
	Created  time.Time  `json:"created"`
	Shipped  *time.Time `json:"shipped,omitempty"`
	Items    []lineItem `json:"items"`
	Tags     []string   `json:"tags,omitempty"`
	Secret   string     `json:"-"`
	internal int
}

func TestCodec_RoundTripStruct(t *testing.T) {
	c := New()
	shipped := testTime.Add(time.Hour)
	in := order{
		Base:     Base{ID: "o-1"},
		Customer: "alice",
		Created:  testTime,
		Shipped:  &shipped,
		Items: []lineItem{
			{SKU: "a", At: testTime.Add(time.Minute)},
			{SKU: "b", At: testTime.Add(2 * time.Minute)},
		},
		Secret: "hidden",
	}

	tree, err := c.Encode(in)
	require.NoError(t, err)

	m, ok := tree.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "o-1", m["id"], "嵌入结构体应被展开")
	assert.NotContains(t, m, "Secret")
	assert.NotContains(t, m, "tags")
	assert.NotContains(t, m, "internal")
	assert.Equal(t, map[string]any{TimestampKey: "2020-01-02T03:04:05.006+0000"}, m["created"])

	var out order
	require.NoError(t, c.Decode(tree, &out))
	assert.Equal(t, "o-1", out.ID)
	assert.Equal(t, "alice", out.Customer)
	assert.True(t, testTime.Equal(out.Created))
	require.NotNil(t, out.Shipped)
	assert.True(t, shipped.Equal(*out.Shipped))
	require.Len(t, out.Items, 2)
	assert.True(t, testTime.Add(2*time.Minute).Equal(out.Items[1].At))
	assert.Empty(t, out.Secret)
}

type ptrEmbed struct {
	*Base
	Name string `json:"name"`
}

type namedEmbed struct {
	Base `json:"base"`
	Name string `json:"name"`
}

type note struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type hiddenEmbed struct {
	note
	Name string `json:"name"`
}

func TestCodec_EmbeddedPointer(t *testing.T) {
	c := New()

	in := ptrEmbed{Base: &Base{ID: "p-1"}, Name: "x"}
	tree, err := c.Encode(in)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "p-1", "name": "x"}, tree)

	var out ptrEmbed
	require.NoError(t, c.Decode(tree, &out))
	require.NotNil(t, out.Base, "嵌入指针应被分配")
	assert.Equal(t, in, out)

	tree, err = c.Encode(ptrEmbed{Name: "y"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "y"}, tree)

	var empty ptrEmbed
	require.NoError(t, c.Decode(tree, &empty))
	assert.Nil(t, empty.Base)
	assert.Equal(t, "y", empty.Name)
}

func TestCodec_EmbeddedWithName(t *testing.T) {
	c := New()
	in := namedEmbed{Base: Base{ID: "n-1"}, Name: "x"}

	tree, err := c.Encode(in)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"base": map[string]any{"id": "n-1"}, "name": "x"}, tree)

	var out namedEmbed
	require.NoError(t, c.Decode(tree, &out))
	assert.Equal(t, in, out)

	var flat namedEmbed
	require.NoError(t, c.Decode(map[string]any{"id": "stray", "name": "x"}, &flat))
	assert.Empty(t, flat.ID, "带标签名的嵌入结构体不读取外层键")
}

func TestCodec_EmbeddedUnexported(t *testing.T) {
	c := New()
	in := hiddenEmbed{note: note{ID: "u-1", Text: "hi"}, Name: "x"}

	tree, err := c.Encode(in)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "u-1", "text": "hi", "name": "x"}, tree)

	var out hiddenEmbed
	require.NoError(t, c.Decode(tree, &out))
	assert.Equal(t, in, out)

	var folded hiddenEmbed
	require.NoError(t, c.Decode(map[string]any{"ID": "u-2", "Name": "y"}, &folded))
	assert.Equal(t, "u-2", folded.ID, "字段名不区分大小写匹配")
	assert.Equal(t, "y", folded.Name)
}

func TestCodec_EmbeddedShadowed(t *testing.T) {
	type shadow struct {
		Base
		ID string `json:"id"`
	}
	c := New()

	tree, err := c.Encode(shadow{Base: Base{ID: "inner"}, ID: "outer"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "outer"}, tree)

	var out shadow
	require.NoError(t, c.Decode(map[string]any{"id": "x"}, &out))
	assert.Equal(t, "x", out.ID)
	assert.Empty(t, out.Base.ID)
}

func TestCodec_SkipDashField(t *testing.T) {
	type dashed struct {
		Keep string `json:"keep"`
		Skip string `json:"-"`
	}
	c := New()

	tree, err := c.Encode(dashed{Keep: "k", Skip: "s"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"keep": "k"}, tree)

	var out dashed
	require.NoError(t, c.Decode(map[string]any{"keep": "k", "-": "leak", "Skip": "s"}, &out))
	assert.Equal(t, dashed{Keep: "k"}, out)
}

func TestCodec_RoundTripGenericAnyDepth(t *testing.T) {
	c := New()
	in := map[string]any{
		"at": testTime,
		"list": []any{
			"x",
			map[string]any{"deep": []any{testTime.Add(time.Second)}},
		},
	}

	tree, err := c.Encode(in)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, c.Decode(tree, &out))

	at, ok := out["at"].(time.Time)
	require.True(t, ok, "顶层时间戳应还原为 time.Time")
	assert.True(t, testTime.Equal(at))

	list := out["list"].([]any)
	deep := list[1].(map[string]any)["deep"].([]any)
	got, ok := deep[0].(time.Time)
	require.True(t, ok, "嵌套在序列和映射中的时间戳也应还原")
	assert.True(t, testTime.Add(time.Second).Equal(got))
}

func TestCodec_DecodeDoesNotMutateInput(t *testing.T) {
	tree := map[string]any{"at": map[string]any{TimestampKey: "2020-01-02T03:04:05.006+0000"}}

	var out map[string]any
	require.NoError(t, Default().Decode(tree, &out))

	_, stillMap := tree["at"].(map[string]any)
	assert.True(t, stillMap)
	_, isTime := out["at"].(time.Time)
	assert.True(t, isTime)
}

func TestCodec_MalformedTimestampPolicy(t *testing.T) {
	type doc struct {
		Name  string    `json:"name"`
		At    time.Time `json:"at"`
		Other time.Time `json:"other"`
	}
	tree := map[string]any{
		"name":  "x",
		"at":    map[string]any{TimestampKey: "garbage"},
		"other": map[string]any{TimestampKey: "2020-01-02T03:04:05.006Z"},
	}

	t.Run("typed", func(t *testing.T) {
		var out doc
		err := New().Decode(tree, &out)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedTimestamp)

		var te *TimestampError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, "at", te.Path)
		assert.Equal(t, "garbage", te.Value)

		assert.Equal(t, "x", out.Name, "兄弟字段照常解码")
		assert.True(t, out.At.IsZero())
		assert.True(t, testTime.Equal(out.Other))
	})

	t.Run("generic", func(t *testing.T) {
		var out map[string]any
		err := New().Decode(tree, &out)
		assert.ErrorIs(t, err, ErrMalformedTimestamp)
		assert.Equal(t, map[string]any{TimestampKey: "garbage"}, out["at"])
		_, ok := out["other"].(time.Time)
		assert.True(t, ok)
	})

	t.Run("string field", func(t *testing.T) {
		var out doc
		err := New().Decode(map[string]any{"at": "not a time"}, &out)
		assert.ErrorIs(t, err, ErrMalformedTimestamp)
		assert.True(t, out.At.IsZero())
	})
}

func TestCodec_DecodeTimestampString(t *testing.T) {
	var out struct {
		At time.Time `json:"at"`
	}
	require.NoError(t, New().Decode(map[string]any{"at": "2020-01-02T03:04:05:006+0000"}, &out))
	assert.True(t, testTime.Equal(out.At))
}

func TestCodec_DecodeTargetErrors(t *testing.T) {
	c := New()
	assert.ErrorIs(t, c.Decode(map[string]any{}, nil), ErrNilTarget)

	var m map[string]any
	assert.ErrorIs(t, c.Decode(map[string]any{}, m), ErrNonPointerTarget)

	var n int
	assert.ErrorIs(t, c.Decode(map[string]any{"a": 1}, &n), ErrDecode)
}

func TestCodec_NullMapKey(t *testing.T) {
	c := New()

	tree, err := c.Encode(map[*string]int{nil: 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"": 1}, tree)

	tree, err = c.Encode(map[any]any{nil: "x", "k": 2})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"": "x", "k": 2}, tree)
}

func TestCodec_KeyCollision(t *testing.T) {
	c := New()
	empty := ""

	_, err := c.Encode(map[*string]int{nil: 1, &empty: 2})
	assert.ErrorIs(t, err, ErrKeyCollision)

	_, err = c.Encode(map[string]any{"m": map[any]any{nil: "x", "": "y"}})
	assert.ErrorIs(t, err, ErrKeyCollision)
	assert.ErrorContains(t, err, "m: ")
}

func TestCodec_EncodeUnsupported(t *testing.T) {
	_, err := New().Encode(struct {
		C chan int `json:"c"`
	}{C: make(chan int)})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestCodec_Location(t *testing.T) {
	cst := time.FixedZone("CST", 8*3600)
	c := New(WithLocation(cst))
	assert.Equal(t, cst, c.Location())

	tree, err := c.Encode(testTime)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{TimestampKey: "2020-01-02T11:04:05.006+0800"}, tree)

	var out time.Time
	require.NoError(t, c.Decode(tree, &out))
	assert.True(t, testTime.Equal(out))
	_, offset := out.Zone()
	assert.Equal(t, 8*3600, offset)
}

func TestCodec_LeafTypes(t *testing.T) {
	type token [4]byte
	c := New(WithLeafTypes(token{}))

	tree, err := c.Encode(map[string]any{"t": token{1, 2, 3, 4}, "b": []byte("hi")})
	require.NoError(t, err)
	m := tree.(map[string]any)
	assert.Equal(t, token{1, 2, 3, 4}, m["t"])
	assert.Equal(t, []byte("hi"), m["b"])
}

func TestCodec_FieldNameFunc(t *testing.T) {
	c := New(WithTagName("bson"), WithFieldNameFunc(func(s string) string { return "f_" + s }))

	tree, err := c.Encode(struct {
		Name string
		Age  int `bson:"age"`
	}{Name: "n", Age: 3})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"f_Name": "n", "age": 3}, tree)
}

func TestCodec_Clone(t *testing.T) {
	type summary struct {
		ID      string    `json:"id"`
		Created time.Time `json:"created"`
	}
	src := order{Base: Base{ID: "o-2"}, Customer: "bob", Created: testTime}

	var dst summary
	require.NoError(t, New().Clone(src, &dst))
	assert.Equal(t, "o-2", dst.ID)
	assert.True(t, testTime.Equal(dst.Created))
}

func TestCodec_DecodeHooks(t *testing.T) {
	type level int
	levelType := reflect.TypeOf(level(0))
	hook := mapstructure.DecodeHookFuncType(func(from, to reflect.Type, data any) (any, error) {
		if to != levelType || from.Kind() != reflect.String {
			return data, nil
		}
		if data.(string) == "high" {
			return level(2), nil
		}
		return level(0), nil
	})

	var out struct {
		L level `json:"l"`
	}
	require.NoError(t, New(WithDecodeHooks(hook)).Decode(map[string]any{"l": "high"}, &out))
	assert.Equal(t, level(2), out.L)
}

func TestCodec_DecodeBase64Bytes(t *testing.T) {
	var out struct {
		Raw []byte `json:"raw"`
	}
	data, err := Marshal(map[string]any{"raw": []byte("hello")})
	require.NoError(t, err)
	require.NoError(t, Unmarshal(data, &out))
	assert.Equal(t, []byte("hello"), out.Raw)
}

func TestCodec_Errors(t *testing.T) {
	err := &TimestampError{Value: "v", Err: errors.New("boom")}
	assert.ErrorIs(t, err, ErrMalformedTimestamp)
	assert.Contains(t, err.Error(), `"v"`)
	assert.NotContains(t, err.Error(), " at ")

	err = &TimestampError{Path: "a.b[0]", Value: "v"}
	assert.ErrorIs(t, err, ErrMalformedTimestamp)
	assert.Contains(t, err.Error(), "at a.b[0]")
}
