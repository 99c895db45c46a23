// Package collection 提供依插入順序保存、以 key 線性搜尋的小型集合
package collection

// Collection 保存元素的插入順序，key 由 keyOf 從元素取得
// key 不要求唯一，Remove 會移除所有相同 key 的元素
type Collection[K comparable, V any] struct {
	keyOf func(V) K
	items []V
}

func New[K comparable, V any](keyOf func(V) K) *Collection[K, V] {
	return &Collection[K, V]{keyOf: keyOf}
}

// Add 加到最後面
func (c *Collection[K, V]) Add(v V) {
	c.items = append(c.items, v)
}

// Remove 移除所有 key 相符的元素，回傳移除數量
func (c *Collection[K, V]) Remove(key K) int {
	kept := c.items[:0]
	for _, v := range c.items {
		if c.keyOf(v) != key {
			kept = append(kept, v)
		}
	}
	removed := len(c.items) - len(kept)
	// 清掉尾端殘留的參考
	var zero V
	for i := len(kept); i < len(c.items); i++ {
		c.items[i] = zero
	}
	c.items = kept
	return removed
}

// Find 回傳第一個 key 相符的元素
func (c *Collection[K, V]) Find(key K) (V, bool) {
	for _, v := range c.items {
		if c.keyOf(v) == key {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// List 回傳所有元素的拷貝切片
func (c *Collection[K, V]) List() []V {
	out := make([]V, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[K, V]) Len() int {
	return len(c.items)
}
