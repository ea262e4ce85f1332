package app

import (
	"context"
	"testing"

	"image-management-server/internal/common"
	"image-management-server/internal/model"
	"image-management-server/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试内容：验证客户列表包含图片数量与剩余配额。
func TestOwnerUseCase_ListCustomers(t *testing.T) {
	f := setupAppFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ownerUC.SeedSampleData(ctx))

	customers, err := f.ownerUC.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	testutils.CreateImages(t, f.gdb, model.CustomerOwner(customers[0].ID), 10)

	customers, err = f.ownerUC.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", customers[0].Name)
	assert.Equal(t, 10, customers[0].ImageCount)
	assert.Equal(t, 0, customers[0].RemainingImageSlots)
	assert.False(t, customers[0].CanAddMoreImages)
	assert.Equal(t, 0, customers[1].ImageCount)
	assert.Equal(t, 10, customers[1].RemainingImageSlots)
	assert.True(t, customers[1].CanAddMoreImages)
}

// 测试内容：验证客户详情中的图片按主图优先排序，不存在时返回 not_found。
func TestOwnerUseCase_GetCustomer(t *testing.T) {
	f := setupAppFixture(t)
	ctx := context.Background()
	c := testutils.CreateCustomer(t, f.gdb, "c")
	owner := model.CustomerOwner(c.ID)
	images := testutils.CreateImages(t, f.gdb, owner, 3)
	require.True(t, f.imageUC.SetMainImage(ctx, images[2].ID, owner).Success)

	detail, err := f.ownerUC.GetCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, detail.ImageCount)
	assert.Equal(t, 7, detail.RemainingImageSlots)
	require.Len(t, detail.Images, 3)
	assert.Equal(t, images[2].ID, detail.Images[0].ID)

	_, err = f.ownerUC.GetCustomer(ctx, 999)
	serviceErr, ok := common.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrorCodeNotFound, serviceErr.Code)
	assert.Equal(t, "Customer with ID 999 not found.", serviceErr.Message)
}

func TestOwnerUseCase_Leads(t *testing.T) {
	f := setupAppFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ownerUC.SeedSampleData(ctx))

	leads, err := f.ownerUC.ListLeads(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "Tech Corp", leads[0].Company)

	detail, err := f.ownerUC.GetLead(ctx, leads[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob Wilson", detail.Name)
	assert.NotNil(t, detail.Images)
	assert.Empty(t, detail.Images)

	_, err = f.ownerUC.GetLead(ctx, 999)
	serviceErr, ok := common.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "Lead with ID 999 not found.", serviceErr.Message)
}

// 测试内容：验证示例数据只写入一次，已有数据的表不会被补写。
func TestOwnerUseCase_SeedSampleDataIsIdempotent(t *testing.T) {
	f := setupAppFixture(t)
	ctx := context.Background()
	testutils.CreateLead(t, f.gdb, "existing")

	require.NoError(t, f.ownerUC.SeedSampleData(ctx))
	require.NoError(t, f.ownerUC.SeedSampleData(ctx))

	customers, err := f.ownerUC.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "John Doe", customers[0].Name)
	assert.Equal(t, "john@example.com", customers[0].Email)
	assert.Equal(t, "+1-555-0456", customers[1].Phone)

	leads, err := f.ownerUC.ListLeads(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "existing", leads[0].Name)
}
