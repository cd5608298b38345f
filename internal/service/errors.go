package service

import "errors"

// ==================== 业务错误 ====================

// 读路径（列目录、解码名称）遇到缺失一律降级为空结果，
// 写路径（加购、下单、删目录）必须把具体错误抛给调用方。
var (
	// ErrNotFound 名称或编码解析不到，调用方应提示界面过期并回根目录
	ErrNotFound = errors.New("记录不存在")

	// ErrInvalidState 状态不允许该操作，例如数量为 1 时继续减、空车下单
	ErrInvalidState = errors.New("当前状态不允许该操作")

	// ErrIntegrityViolation 级联删除半途失败，留下孤儿数据，需人工对账
	ErrIntegrityViolation = errors.New("目录数据完整性被破坏")

	// ErrBanned 用户已被封禁
	ErrBanned = errors.New("用户已被封禁")
)
