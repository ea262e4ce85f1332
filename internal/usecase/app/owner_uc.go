package app

import (
	"context"
	"fmt"

	"image-management-server/internal/common"
	"image-management-server/internal/consts"
	"image-management-server/internal/dto"
	"image-management-server/internal/model"
	"image-management-server/internal/repository"

	"github.com/rs/zerolog/log"
)

func (c *OwnerUseCase) ListCustomers(ctx context.Context) ([]dto.CustomerResponse, error) {
	customers, err := c.repos.Owner.ListCustomers(ctx)
	if err != nil {
		log.Error().Err(err).Msg("查询客户列表失败")
		return nil, common.NewInternalError(consts.MsgListOwnersFailed)
	}
	ids := make([]uint, 0, len(customers))
	for _, customer := range customers {
		ids = append(ids, customer.ID)
	}
	counts, err := c.repos.Owner.CountImagesByOwners(ctx, model.OwnerKindCustomer, ids)
	if err != nil {
		log.Error().Err(err).Msg("统计客户图片数量失败")
		return nil, common.NewInternalError(consts.MsgListOwnersFailed)
	}

	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		out = append(out, dto.NewCustomerResponse(customer, counts[customer.ID]))
	}
	return out, nil
}

// GetCustomer 返回客户资料及按主图优先排序的图片
func (c *OwnerUseCase) GetCustomer(ctx context.Context, id uint) (*dto.CustomerDetailResponse, error) {
	customer, err := c.repos.Owner.FindCustomer(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, common.NewNotFoundError(fmt.Sprintf("Customer with ID %d not found.", id))
		}
		log.Error().Err(err).Uint("customer_id", id).Msg("查询客户失败")
		return nil, common.NewInternalError(consts.MsgListOwnersFailed)
	}
	return &dto.CustomerDetailResponse{
		CustomerResponse: dto.NewCustomerResponse(*customer, int64(len(customer.Images))),
		Images:           dto.NewImageResponses(customer.Images),
	}, nil
}

func (c *OwnerUseCase) ListLeads(ctx context.Context) ([]dto.LeadResponse, error) {
	leads, err := c.repos.Owner.ListLeads(ctx)
	if err != nil {
		log.Error().Err(err).Msg("查询线索列表失败")
		return nil, common.NewInternalError(consts.MsgListOwnersFailed)
	}
	ids := make([]uint, 0, len(leads))
	for _, lead := range leads {
		ids = append(ids, lead.ID)
	}
	counts, err := c.repos.Owner.CountImagesByOwners(ctx, model.OwnerKindLead, ids)
	if err != nil {
		log.Error().Err(err).Msg("统计线索图片数量失败")
		return nil, common.NewInternalError(consts.MsgListOwnersFailed)
	}

	out := make([]dto.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		out = append(out, dto.NewLeadResponse(lead, counts[lead.ID]))
	}
	return out, nil
}

func (c *OwnerUseCase) GetLead(ctx context.Context, id uint) (*dto.LeadDetailResponse, error) {
	lead, err := c.repos.Owner.FindLead(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, common.NewNotFoundError(fmt.Sprintf("Lead with ID %d not found.", id))
		}
		log.Error().Err(err).Uint("lead_id", id).Msg("查询线索失败")
		return nil, common.NewInternalError(consts.MsgListOwnersFailed)
	}
	return &dto.LeadDetailResponse{
		LeadResponse: dto.NewLeadResponse(*lead, int64(len(lead.Images))),
		Images:       dto.NewImageResponses(lead.Images),
	}, nil
}
