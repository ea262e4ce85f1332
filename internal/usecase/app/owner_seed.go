package app

import (
	"context"

	"image-management-server/internal/model"
	"image-management-server/internal/repository"

	"github.com/rs/zerolog/log"
)

func sampleCustomers() []model.Customer {
	return []model.Customer{
		{Name: "John Doe", Email: "john@example.com", Phone: "+1-555-0123"},
		{Name: "Jane Smith", Email: "jane@example.com", Phone: "+1-555-0456"},
	}
}

func sampleLeads() []model.Lead {
	return []model.Lead{
		{Name: "Alice Johnson", Email: "alice@company.com", Company: "Tech Corp"},
		{Name: "Bob Wilson", Email: "bob@business.com", Company: "Business Inc"},
	}
}

// SeedSampleData 分别在客户表、线索表为空时写入示例数据，重复调用不会产生重复记录。
func (c *OwnerUseCase) SeedSampleData(ctx context.Context) error {
	return c.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		count, err := tx.Owner.CountOwners(ctx, model.OwnerKindCustomer)
		if err != nil {
			return err
		}
		if count == 0 {
			customers := sampleCustomers()
			for i := range customers {
				if err := tx.Owner.CreateCustomer(ctx, &customers[i]); err != nil {
					return err
				}
			}
			log.Info().Int("count", len(customers)).Msg("✅ 已写入示例客户")
		}

		count, err = tx.Owner.CountOwners(ctx, model.OwnerKindLead)
		if err != nil {
			return err
		}
		if count == 0 {
			leads := sampleLeads()
			for i := range leads {
				if err := tx.Owner.CreateLead(ctx, &leads[i]); err != nil {
					return err
				}
			}
			log.Info().Int("count", len(leads)).Msg("✅ 已写入示例线索")
		}
		return nil
	})
}
