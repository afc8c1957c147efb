package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Value stores the address as jsonb.
func (a ShippingAddress) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *ShippingAddress) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = ShippingAddress{}
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("models.ShippingAddress.Scan: unsupported type %T", src)
	}
}
