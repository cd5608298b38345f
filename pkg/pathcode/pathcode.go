package pathcode

import (
	"fmt"
	"strconv"
	"strings"
)

// 商品编码工具
//
// 编码是从根到节点的本地 ID 序列，用下划线连接，例如 "2_1_1_2"。
// 编码既是业务主键又是外键（nodes 表的 parent_code），因此分隔符
// 绝不能出现在单段文本里——段只允许正整数，天然安全。

// Delimiter 编码段之间的分隔符
const Delimiter = "_"

// Compose 拼接编码：父编码 + 分隔符 + 本地 ID
// parentCode 为空串表示根层级，此时直接返回本地 ID 的文本形式
func Compose(parentCode string, localID int) string {
	if parentCode == "" {
		return strconv.Itoa(localID)
	}
	return parentCode + Delimiter + strconv.Itoa(localID)
}

// Parent 去掉最后一段，返回父编码
// 只有一段时返回空串（根层级没有父编码）
func Parent(code string) string {
	idx := strings.LastIndex(code, Delimiter)
	if idx < 0 {
		return ""
	}
	return code[:idx]
}

// LastSegment 返回编码最后一段的本地 ID
func LastSegment(code string) (int, error) {
	idx := strings.LastIndex(code, Delimiter)
	seg := code
	if idx >= 0 {
		seg = code[idx+1:]
	}
	id, err := strconv.Atoi(seg)
	if err != nil {
		return 0, fmt.Errorf("编码段不是整数 %q: %w", seg, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("编码段必须为正整数: %d", id)
	}
	return id, nil
}

// Depth 返回编码的层级数（段数）
func Depth(code string) int {
	if code == "" {
		return 0
	}
	return strings.Count(code, Delimiter) + 1
}

// Segments 按层级拆出所有本地 ID
func Segments(code string) ([]int, error) {
	if code == "" {
		return nil, nil
	}
	parts := strings.Split(code, Delimiter)
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("非法编码 %q: %w", code, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Ancestors 返回编码自身及所有祖先，按由深到浅排列
// 例如 "2_1_1" -> ["2_1_1", "2_1", "2"]
func Ancestors(code string) []string {
	var out []string
	for c := code; c != ""; c = Parent(c) {
		out = append(out, c)
	}
	return out
}

// Valid 校验编码格式（非空、全部为正整数段）
func Valid(code string) bool {
	if code == "" {
		return false
	}
	segs, err := Segments(code)
	if err != nil {
		return false
	}
	for _, s := range segs {
		if s <= 0 {
			return false
		}
	}
	return true
}
