package models

import (
	"encoding/json"
	"gorm.io/gorm"
)

// Products 保存最後一次比對後的CartLine快照(JSON陣列)，每次整份替換
type Cart struct {
	gorm.Model
	UserID   uint   `gorm:"uniqueIndex;not null"`
	Products string `gorm:"type:text"`
}

// Lines 解析快照，空字串代表空購物車
func (c *Cart) Lines() ([]CartLine, error) {
	lines := []CartLine{}
	if c.Products == "" {
		return lines, nil
	}
	if err := json.Unmarshal([]byte(c.Products), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func EncodeCartLines(lines []CartLine) (string, error) {
	if lines == nil {
		lines = []CartLine{}
	}
	b, err := json.Marshal(lines)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
