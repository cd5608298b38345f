package service

import "sync"

// ==================== 按键互斥锁 ====================

// KeyedMutex 按用户 ID 互斥
//
// 会话层的事件处理并发进来，同一用户的加购 / 增减 / 下单必须
// 串行，否则数量会丢更新、下单会重复清车。锁条目不回收：
// 用户量级是聊天机器人的会话数，常驻内存可以接受。
type KeyedMutex struct {
	locks sync.Map // int64 -> *sync.Mutex
}

// NewKeyedMutex 创建按键互斥锁
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{}
}

// Lock 锁住指定键
func (m *KeyedMutex) Lock(key int64) {
	mu, _ := m.locks.LoadOrStore(key, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
}

// Unlock 释放指定键
func (m *KeyedMutex) Unlock(key int64) {
	mu, ok := m.locks.Load(key)
	if !ok {
		return
	}
	mu.(*sync.Mutex).Unlock()
}
