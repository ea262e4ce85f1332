package model

import (
	"errors"
	"fmt"
)

type OwnerKind string

const (
	OwnerKindCustomer OwnerKind = "customer"
	OwnerKindLead     OwnerKind = "lead"
)

// ErrInvalidOwnerRef customerId 与 leadId 同时提供或同时缺失
var ErrInvalidOwnerRef = errors.New("exactly one of customer id or lead id is required")

// OwnerRef 图片归属方：Customer(id) 或 Lead(id)，二者互斥。
type OwnerRef struct {
	Kind OwnerKind
	ID   uint
}

func CustomerOwner(id uint) OwnerRef {
	return OwnerRef{Kind: OwnerKindCustomer, ID: id}
}

func LeadOwner(id uint) OwnerRef {
	return OwnerRef{Kind: OwnerKindLead, ID: id}
}

// ParseOwnerRef 将接口层的两个可选字段收敛为唯一的归属方
func ParseOwnerRef(customerID, leadID *uint) (OwnerRef, error) {
	switch {
	case customerID != nil && leadID == nil:
		return CustomerOwner(*customerID), nil
	case leadID != nil && customerID == nil:
		return LeadOwner(*leadID), nil
	default:
		return OwnerRef{}, ErrInvalidOwnerRef
	}
}

// ParseOptionalOwnerRef 与 ParseOwnerRef 相同，但允许两个字段都缺失（返回 nil）。
func ParseOptionalOwnerRef(customerID, leadID *uint) (*OwnerRef, error) {
	if customerID == nil && leadID == nil {
		return nil, nil
	}
	owner, err := ParseOwnerRef(customerID, leadID)
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

// Column 归属方在 profile_images 表中对应的外键列
func (o OwnerRef) Column() string {
	if o.Kind == OwnerKindLead {
		return "lead_id"
	}
	return "customer_id"
}

// Label 用于对外提示语，如 "Customer with ID 5 not found."
func (o OwnerRef) Label() string {
	if o.Kind == OwnerKindLead {
		return "Lead"
	}
	return "Customer"
}

func (o OwnerRef) String() string {
	return fmt.Sprintf("%s:%d", o.Kind, o.ID)
}

// Owns 判断图片是否归属于当前归属方
func (o OwnerRef) Owns(image *ProfileImage) bool {
	if image == nil {
		return false
	}
	owner, ok := image.Owner()
	return ok && owner == o
}

// Assign 将图片的外键指向当前归属方，并清空另一侧外键
func (o OwnerRef) Assign(image *ProfileImage) {
	id := o.ID
	if o.Kind == OwnerKindLead {
		image.LeadID = &id
		image.CustomerID = nil
		return
	}
	image.CustomerID = &id
	image.LeadID = nil
}
