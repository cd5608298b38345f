package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ==================== 商品属性常量 ====================

// NoPhoto 无图占位值，沿用运营端的历史约定
const NoPhoto = "без фото"

// CurrencyGlyph 价格文本的货币后缀
const CurrencyGlyph = "₽"

// ==================== ProductAttrs 商品属性 ====================

// ProductAttrs 商品属性（图片 / 描述 / 展示价格）
// 每个产品线编码一行，随节点删除而级联删除
type ProductAttrs struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Code        string `gorm:"size:255;uniqueIndex;not null"` // 产品线节点编码，如 "2_1_1"
	PhotoURL    string `gorm:"size:500"`                      // 图片链接，或 NoPhoto
	Description string `gorm:"type:text"`
	Price       string `gorm:"size:32"` // 带货币后缀的文本价格，如 "100₽"

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProductAttrs) TableName() string {
	return "product_attrs"
}

// HasPhoto 是否配置了真实图片
func (p *ProductAttrs) HasPhoto() bool {
	return p.PhotoURL != "" && p.PhotoURL != NoPhoto
}

// PriceValue 解析文本价格为整数
func (p *ProductAttrs) PriceValue() (int64, error) {
	return ParsePrice(p.Price)
}

// ==================== 价格文本工具 ====================

// ParsePrice 解析 "100₽" 形式的文本价格
// 历史数据没有 schema 版本，价格一律按「整数 + 货币后缀」解析
func ParsePrice(s string) (int64, error) {
	raw := strings.TrimSuffix(strings.TrimSpace(s), CurrencyGlyph)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("价格格式非法 %q: %w", s, err)
	}
	return v, nil
}

// FormatPrice 渲染整数价格为文本形式
func FormatPrice(v int64) string {
	return strconv.FormatInt(v, 10) + CurrencyGlyph
}

// NormalizePrice 清洗运营输入的价格文本，保证只带一个货币后缀
func NormalizePrice(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), CurrencyGlyph, "") + CurrencyGlyph
}
