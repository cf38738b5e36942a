package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storehaus/orders-api/internal/adapters/http/handlers"
	"github.com/storehaus/orders-api/internal/core/domain"
	"github.com/storehaus/orders-api/internal/core/dto"
	"github.com/storehaus/orders-api/internal/core/service"
	"github.com/storehaus/orders-api/internal/core/serviceerrors"
)

type ProductController struct {
	productService *service.ProductService
}

type ProductResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Stock int    `json:"stock"`
}

type ProductListResponse struct {
	Count    int               `json:"count"`
	Products []ProductResponse `json:"products"`
}

type ProductDetailResponse struct {
	Product ProductResponse `json:"product"`
}

type ProductMutationResponse struct {
	Message string          `json:"message"`
	Product ProductResponse `json:"product"`
}

func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:    int64(product.ID),
		Name:  product.Name,
		Price: int64(product.Price),
		Stock: product.Stock,
	}
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// CreateProduct godoc
// @Summary     Create a product
// @Description Adds a new product to the catalog
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       request body     dto.CreateProductRequest true "Product data"
// @Success     201     {object} ProductMutationResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     500     {object} handlers.ErrorResponse
// @Router      /products [post]
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var request dto.CreateProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	product, err := pc.productService.CreateProduct(c.Request.Context(), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ProductMutationResponse{
		Message: "Product created successfully",
		Product: NewProductResponse(product),
	})
}

// GetAll godoc
// @Summary     List all products
// @Description Returns the full product catalog
// @Tags        products
// @Produce     json
// @Success     200 {object} ProductListResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /products [get]
func (pc *ProductController) GetAll(c *gin.Context) {
	products, err := pc.productService.GetAll(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	response := make([]ProductResponse, len(products))
	for i, product := range products {
		response[i] = NewProductResponse(product)
	}

	c.JSON(http.StatusOK, ProductListResponse{Count: len(products), Products: response})
}

// GetByID godoc
// @Summary     Get product by ID
// @Description Returns a single product by its ID
// @Tags        products
// @Produce     json
// @Param       id  path     int true "Product ID"
// @Success     200 {object} ProductDetailResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /products/{id} [get]
func (pc *ProductController) GetByID(c *gin.Context) {
	productID, ok := domain.ParseID(c.Param("id"))
	if !ok {
		handlers.HandleError(c, serviceerrors.NewNotFoundError("Product not found"))
		return
	}
	product, err := pc.productService.GetByID(c.Request.Context(), productID)
	if err != nil {
		if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			handlers.HandleError(c, serviceerrors.NewNotFoundError("Product not found"))
			return
		}
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ProductDetailResponse{Product: NewProductResponse(product)})
}
