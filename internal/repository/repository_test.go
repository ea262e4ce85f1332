package repository

import (
	"context"
	"errors"
	"testing"

	"image-management-server/internal/model"
	"image-management-server/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mainCount(t *testing.T, repos *Repositories, owner model.OwnerRef) int {
	t.Helper()
	images, err := repos.Image.ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	n := 0
	for _, img := range images {
		if img.IsMainImage {
			n++
		}
	}
	return n
}

// 测试内容：验证列表按主图优先、创建时间升序排列，且只包含本归属方的图片。
func TestImageRepository_ListByOwnerOrdering(t *testing.T) {
	gdb := testutils.SetupDB(t)
	repos := NewRepositories(gdb)
	ctx := context.Background()

	c := testutils.CreateCustomer(t, gdb, "c")
	l := testutils.CreateLead(t, gdb, "l")
	owner := model.CustomerOwner(c.ID)
	images := testutils.CreateImages(t, gdb, owner, 3)
	testutils.CreateImages(t, gdb, model.LeadOwner(l.ID), 2)

	ok, err := repos.Image.SetMain(ctx, images[2].ID, owner)
	require.NoError(t, err)
	require.True(t, ok)

	list, err := repos.Image.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, images[2].ID, list[0].ID)
	assert.True(t, list[0].IsMainImage)
	assert.Equal(t, images[0].ID, list[1].ID)
	assert.Equal(t, images[1].ID, list[2].ID)
}

// 测试内容：验证没有图片的归属方（甚至不存在的归属方）返回空切片而不是错误。
func TestImageRepository_ListByOwnerEmpty(t *testing.T) {
	gdb := testutils.SetupDB(t)
	repos := NewRepositories(gdb)

	list, err := repos.Image.ListByOwner(context.Background(), model.LeadOwner(999))
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

// 测试内容：验证同 ID 的客户与线索之间计数互不影响。
func TestImageRepository_CountByOwnerSeparatesKinds(t *testing.T) {
	gdb := testutils.SetupDB(t)
	repos := NewRepositories(gdb)
	ctx := context.Background()

	c := testutils.CreateCustomer(t, gdb, "c")
	l := testutils.CreateLead(t, gdb, "l")
	require.Equal(t, c.ID, l.ID)

	testutils.CreateImages(t, gdb, model.CustomerOwner(c.ID), 4)
	testutils.CreateImages(t, gdb, model.LeadOwner(l.ID), 1)

	n, err := repos.Image.CountByOwner(ctx, model.CustomerOwner(c.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	n, err = repos.Image.CountByOwner(ctx, model.LeadOwner(l.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

// 测试内容：验证 SetMain 会清除原主图，对其他归属方的图片不生效。
func TestImageRepository_SetMain(t *testing.T) {
	gdb := testutils.SetupDB(t)
	repos := NewRepositories(gdb)
	ctx := context.Background()

	c := testutils.CreateCustomer(t, gdb, "c")
	other := testutils.CreateCustomer(t, gdb, "o")
	owner := model.CustomerOwner(c.ID)
	images := testutils.CreateImages(t, gdb, owner, 2)
	foreign := testutils.CreateImages(t, gdb, model.CustomerOwner(other.ID), 1)

	ok, err := repos.Image.SetMain(ctx, images[0].ID, owner)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = repos.Image.SetMain(ctx, images[1].ID, owner)
	require.NoError(t, err)
	require.True(t, ok)

	main, err := repos.Image.FindMain(ctx, owner)
	require.NoError(t, err)
	require.NotNil(t, main)
	assert.Equal(t, images[1].ID, main.ID)
	assert.Equal(t, 1, mainCount(t, repos, owner))

	ok, err = repos.Image.SetMain(ctx, foreign[0].ID, owner)
	require.NoError(t, err)
	assert.False(t, ok)
	main, err = repos.Image.FindMain(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, images[1].ID, main.ID)
	assert.Equal(t, 0, mainCount(t, repos, model.CustomerOwner(other.ID)))
}

func TestImageRepository_FindMainNone(t *testing.T) {
	gdb := testutils.SetupDB(t)
	repos := NewRepositories(gdb)

	main, err := repos.Image.FindMain(context.Background(), model.CustomerOwner(1))
	require.NoError(t, err)
	assert.Nil(t, main)
}

func TestImageRepository_ClearMain(t *testing.T) {
	gdb := testutils.SetupDB(t)
	repos := NewRepositories(gdb)
	ctx := context.Background()

	c := testutils.CreateCustomer(t, gdb, "c")
	owner := model.CustomerOwner(c.ID)
	images := testutils.CreateImages(t, gdb, owner, 1)
	_, err := repos.Image.SetMain(ctx, images[0].ID, owner)
	require.NoError(t, err)

	require.NoError(t, repos.Image.ClearMain(ctx, owner))
	assert.Equal(t, 0, mainCount(t, repos, owner))
}

// 测试内容：验证删除在归属不符时不生效，未指定归属方时按 ID 删除。
func TestImageRepository_DeleteImage(t *testing.T) {
	gdb := testutils.SetupDB(t)
	repos := NewRepositories(gdb)
	ctx := context.Background()

	c := testutils.CreateCustomer(t, gdb, "c")
	l := testutils.CreateLead(t, gdb, "l")
	images := testutils.CreateImages(t, gdb, model.CustomerOwner(c.ID), 2)

	wrong := model.LeadOwner(l.ID)
	ok, err := repos.Image.DeleteImage(ctx, images[0].ID, &wrong)
	require.NoError(t, err)
	assert.False(t, ok)

	right := model.CustomerOwner(c.ID)
	ok, err = repos.Image.DeleteImage(ctx, images[0].ID, &right)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repos.Image.DeleteImage(ctx, images[1].ID, nil)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repos.Image.DeleteImage(ctx, images[1].ID, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

// 测试内容：验证事务中返回错误时所有写入回滚。
func TestRepositories_TransactionRollback(t *testing.T) {
	gdb := testutils.SetupDB(t)
	repos := NewRepositories(gdb)
	ctx := context.Background()
	c := testutils.CreateCustomer(t, gdb, "c")
	owner := model.CustomerOwner(c.ID)

	boom := errors.New("boom")
	err := repos.Transaction(ctx, func(tx *Repositories) error {
		img := &model.ProfileImage{Base64Data: testutils.PNGBase64(), FileSize: 1}
		owner.Assign(img)
		if err := tx.Image.Add(ctx, img); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	n, err := repos.Image.CountByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Zero(t, n)
}

// 测试内容：验证嵌套调用复用外层事务。
func TestRepositories_TransactionNested(t *testing.T) {
	gdb := testutils.SetupDB(t)
	repos := NewRepositories(gdb)
	ctx := context.Background()

	err := repos.Transaction(ctx, func(tx *Repositories) error {
		return tx.Transaction(ctx, func(inner *Repositories) error {
			assert.Same(t, tx, inner)
			return nil
		})
	})
	require.NoError(t, err)
}

// 测试内容：验证 LockOwner 返回归属方是否存在。
func TestOwnerRepository_LockOwner(t *testing.T) {
	gdb := testutils.SetupDB(t)
	repos := NewRepositories(gdb)
	ctx := context.Background()
	c := testutils.CreateCustomer(t, gdb, "c")

	err := repos.Transaction(ctx, func(tx *Repositories) error {
		found, err := tx.Owner.LockOwner(ctx, model.CustomerOwner(c.ID))
		require.NoError(t, err)
		assert.True(t, found)

		found, err = tx.Owner.LockOwner(ctx, model.LeadOwner(c.ID))
		require.NoError(t, err)
		assert.False(t, found)
		return nil
	})
	require.NoError(t, err)

	customers, err := repos.Owner.CountOwners(ctx, model.OwnerKindCustomer)
	require.NoError(t, err)
	assert.Equal(t, int64(1), customers)

	leads, err := repos.Owner.CountOwners(ctx, model.OwnerKindLead)
	require.NoError(t, err)
	assert.Zero(t, leads)
}

// 测试内容：验证查询客户时预加载的图片按主图优先排序，并能批量统计图片数量。
func TestOwnerRepository_FindAndCount(t *testing.T) {
	gdb := testutils.SetupDB(t)
	repos := NewRepositories(gdb)
	ctx := context.Background()

	c := testutils.CreateCustomer(t, gdb, "c")
	other := testutils.CreateCustomer(t, gdb, "o")
	owner := model.CustomerOwner(c.ID)
	images := testutils.CreateImages(t, gdb, owner, 3)
	_, err := repos.Image.SetMain(ctx, images[1].ID, owner)
	require.NoError(t, err)

	found, err := repos.Image.FindByID(ctx, images[2].ID)
	require.NoError(t, err)
	assert.True(t, owner.Owns(found))

	_, err = repos.Image.FindByID(ctx, 9999)
	assert.True(t, IsNotFound(err))

	customer, err := repos.Owner.FindCustomer(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, customer.Images, 3)
	assert.Equal(t, images[1].ID, customer.Images[0].ID)

	_, err = repos.Owner.FindLead(ctx, 42)
	assert.True(t, IsNotFound(err))

	counts, err := repos.Owner.CountImagesByOwners(ctx, model.OwnerKindCustomer, []uint{c.ID, other.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[c.ID])
	assert.Zero(t, counts[other.ID])

	customers, err := repos.Owner.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 2)

	lead := &model.Lead{Name: "new"}
	require.NoError(t, repos.Owner.CreateLead(ctx, lead))
	leads, err := repos.Owner.ListLeads(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "new", leads[0].Name)
}
