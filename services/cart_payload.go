package services

import (
	"Storefront/apperr"
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// CartEntry 用戶端送來的商品ID與數量，尚未與商品目錄比對
type CartEntry struct {
	ProductID uint
	Quantity  uint
}

// CartPayload 解析並驗證過的購物車內容
type CartPayload struct {
	Entries []CartEntry
}

// ProductIDs 不重複的商品ID，保持出現順序
func (p CartPayload) ProductIDs() []uint {
	seen := make(map[uint]struct{}, len(p.Entries))
	ids := make([]uint, 0, len(p.Entries))
	for _, entry := range p.Entries {
		if _, ok := seen[entry.ProductID]; ok {
			continue
		}
		seen[entry.ProductID] = struct{}{}
		ids = append(ids, entry.ProductID)
	}
	return ids
}

// Quantities 同一商品出現多次時以第一筆為準
func (p CartPayload) Quantities() map[uint]uint {
	quantities := make(map[uint]uint, len(p.Entries))
	for _, entry := range p.Entries {
		if _, ok := quantities[entry.ProductID]; ok {
			continue
		}
		quantities[entry.ProductID] = entry.Quantity
	}
	return quantities
}

func invalidPayload(format string, args ...interface{}) error {
	return apperr.New(apperr.KindInvalidPayload, fmt.Sprintf(format, args...))
}

// ParseCartPayload 接受JSON陣列，或內容為JSON陣列的字串
// 每個元素需有正整數id(舊版用戶端送shoe_id，視為同義)，quantity可省略(視為0)但不可為負數或非整數，其他欄位忽略
func ParseCartPayload(raw []byte) (CartPayload, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return CartPayload{}, invalidPayload("缺少products")
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return CartPayload{}, invalidPayload("products不是合法的字串")
		}
		raw = bytes.TrimSpace([]byte(inner))
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var elements []map[string]interface{}
	if err := decoder.Decode(&elements); err != nil {
		return CartPayload{}, invalidPayload("products必須是JSON陣列: %v", err)
	}
	if decoder.More() {
		return CartPayload{}, invalidPayload("products後有多餘的資料")
	}
	if elements == nil {
		return CartPayload{}, invalidPayload("products必須是JSON陣列")
	}

	payload := CartPayload{Entries: make([]CartEntry, 0, len(elements))}
	for i, element := range elements {
		if element == nil {
			return CartPayload{}, invalidPayload("products[%d]必須是物件", i)
		}

		rawID, present := element["id"]
		if !present {
			rawID = element["shoe_id"]
		}
		id, ok := parseUint(rawID)
		if !ok || id == 0 {
			return CartPayload{}, invalidPayload("products[%d].id必須是正整數", i)
		}

		var quantity uint64
		if value, present := element["quantity"]; present && value != nil {
			quantity, ok = parseUint(value)
			if !ok {
				return CartPayload{}, invalidPayload("products[%d].quantity必須是非負整數", i)
			}
		}

		payload.Entries = append(payload.Entries, CartEntry{
			ProductID: uint(id),
			Quantity:  uint(quantity),
		})
	}

	return payload, nil
}

func parseUint(value interface{}) (uint64, bool) {
	number, ok := value.(json.Number)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(number.String(), 10, 32)
	if err != nil {
		return 0, false
	}
	return n, true
}
