package xjson

import (
	"reflect"
	"slices"
	"strings"
	"sync"

	goreflect "github.com/goccy/go-reflect"
)

// fieldInfo 结构体中参与编解码的一个字段。
// index 为从外层结构体到该字段的 Field 下标路径，经过展开的嵌入字段时长度大于 1。
type fieldInfo struct {
	name      string
	index     []int
	omitEmpty bool
	tagged    bool
}

// fieldCache 按类型缓存字段表。Encode 与 Decode 读取同一份字段表，
// 两个方向对字段的取舍因此一致。
type fieldCache struct {
	opts *Options
	m    sync.Map // reflect.Type -> []fieldInfo
}

func newFieldCache(opts *Options) *fieldCache {
	return &fieldCache{opts: opts}
}

// fields 返回结构体类型 t 的字段表。规则：
//   - 标签为 "-" 的字段跳过
//   - 无标签名的匿名字段，类型为结构体或指向结构体的指针时展开到外层；
//     time.Time 与叶子类型不展开
//   - 未导出的嵌入结构体值同样展开，只取其导出字段；未导出的嵌入指针跳过，解码时无法分配
//   - 带标签名的匿名字段是普通字段，按标签名嵌套
//   - 同名字段按 encoding/json 的规则取舍：层级浅者优先，同层有标签者优先，仍冲突则全部忽略
func (fc *fieldCache) fields(t reflect.Type) []fieldInfo {
	if v, ok := fc.m.Load(t); ok {
		return v.([]fieldInfo)
	}
	var all []fieldInfo
	fc.collect(t, nil, map[reflect.Type]bool{t: true}, &all)
	v, _ := fc.m.LoadOrStore(t, dominantFields(all))
	return v.([]fieldInfo)
}

func (fc *fieldCache) collect(t reflect.Type, parent []int, visiting map[reflect.Type]bool, out *[]fieldInfo) {
	for i := range t.NumField() {
		sf := t.Field(i)
		tag := sf.Tag.Get(fc.opts.TagName)
		if tag == "-" {
			continue
		}
		name, tagOpts, _ := strings.Cut(tag, ",")
		index := append(slices.Clone(parent), i)

		if sf.Anonymous && name == "" {
			ft := sf.Type
			isPtr := ft.Kind() == reflect.Pointer
			if isPtr {
				ft = ft.Elem()
			}
			if fc.plainStruct(ft) {
				if (isPtr && !sf.IsExported()) || visiting[ft] {
					continue
				}
				visiting[ft] = true
				fc.collect(ft, index, visiting, out)
				delete(visiting, ft)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		tagged := name != ""
		if !tagged {
			name = fc.opts.FieldNameFunc(sf.Name)
		}
		*out = append(*out, fieldInfo{
			name:      name,
			index:     index,
			omitEmpty: hasTagOption(tagOpts, "omitempty"),
			tagged:    tagged,
		})
	}
}

// plainStruct 判断 t 是否按字段表编解码：结构体，且不是 time.Time 或叶子类型。
func (fc *fieldCache) plainStruct(t reflect.Type) bool {
	if t.Kind() != reflect.Struct || t == stdTimeType {
		return false
	}
	_, leaf := fc.opts.LeafTypes[goreflect.ToType(t)]
	return !leaf
}

// dominantFields 去掉被同名字段遮蔽的字段，保持声明顺序。
func dominantFields(all []fieldInfo) []fieldInfo {
	byName := make(map[string][]int, len(all))
	for i, f := range all {
		byName[f.name] = append(byName[f.name], i)
	}
	out := make([]fieldInfo, 0, len(all))
	for i, f := range all {
		pos := byName[f.name]
		if len(pos) == 1 {
			out = append(out, f)
			continue
		}
		if w, ok := dominant(all, pos); ok && w == i {
			out = append(out, f)
		}
	}
	return out
}

func dominant(all []fieldInfo, pos []int) (int, bool) {
	depth := len(all[pos[0]].index)
	for _, p := range pos[1:] {
		depth = min(depth, len(all[p].index))
	}
	var shallow, tagged []int
	for _, p := range pos {
		if len(all[p].index) != depth {
			continue
		}
		shallow = append(shallow, p)
		if all[p].tagged {
			tagged = append(tagged, p)
		}
	}
	switch {
	case len(shallow) == 1:
		return shallow[0], true
	case len(tagged) == 1:
		return tagged[0], true
	default:
		return 0, false
	}
}

// encodeField 按路径读取字段，路径上的 nil 指针表示字段不存在。
func encodeField(v goreflect.Value, index []int) (goreflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return v, false
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}

// decodeField 按路径定位可写字段，路径上的 nil 指针被分配。
func decodeField(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, false
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, v.CanSet()
}
