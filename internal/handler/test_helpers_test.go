package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"image-management-server/internal/config"
	"image-management-server/internal/dto"
	"image-management-server/internal/repository"
	"image-management-server/internal/service"
	"image-management-server/internal/testutils"
	"image-management-server/internal/usecase/app"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type handlerFixture struct {
	gdb    *gorm.DB
	images *ImageHandler
	engine *gin.Engine
}

func setupHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	gdb := testutils.SetupDB(t)
	repos := repository.NewRepositories(gdb)
	cfg := config.Get()

	imageUC := app.NewImageUseCase(repos, service.NewImageService(cfg), service.NewMemoryOwnerLocker(5*time.Second))
	ownerUC := app.NewOwnerUseCase(repos)
	images := NewImageHandler(imageUC)
	owners := NewOwnerHandler(ownerUC)
	system := NewSystemHandler()

	r := gin.New()
	r.GET("/ping", system.Ping)
	r.GET("/version", system.Version)
	r.POST("/images/upload", images.UploadImages)
	r.GET("/images", images.ListImages)
	r.DELETE("/images/:id", images.DeleteImage)
	r.PUT("/images/:id/main", images.SetMainImage)
	r.POST("/images/set-main", images.SetMainImageByBody)
	r.GET("/customers", owners.ListCustomers)
	r.GET("/customers/:id", owners.GetCustomer)
	r.GET("/leads", owners.ListLeads)
	r.GET("/leads/:id", owners.GetLead)

	return &handlerFixture{gdb: gdb, images: images, engine: r}
}

func (f *handlerFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) dto.CommandResult {
	t.Helper()
	var res dto.CommandResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	return res
}

func uintPtr(v uint) *uint { return &v }
