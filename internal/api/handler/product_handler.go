package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/midas/product-tracker/internal/core/domain"
	"github.com/midas/product-tracker/internal/core/ports"
)

// ProductHandler handles HTTP requests for tracked products.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// Add handles POST /v1/products.
//
// @Summary      Add a product for tracking
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      addProductRequest  true   "Product details"
// @Success      201              {object}  messageResponse
// @Failure      400              {object}  ErrorResponse
// @Failure      401              {object}  ErrorResponse
// @Failure      422              {object}  ErrorResponse
// @Router       /v1/products [post]
func (h *ProductHandler) Add(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req addProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	idempotencyKey := c.Request().Header.Get("Idempotency-Key")
	if err := h.service.AddProduct(c.Request().Context(), toAddInput(req, idempotencyKey), actor); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: "Product successfully added for tracking!"})
}

// List handles GET /v1/products — products visible to the caller, newest first.
//
// @Summary      List visible products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        recent  query     int  false  "Return only the N most recent products"
// @Success      200     {object}  listProductsResponse
// @Failure      400     {object}  ErrorResponse
// @Failure      401     {object}  ErrorResponse
// @Router       /v1/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	recent, err := parseRecent(c.QueryParam("recent"))
	if err != nil {
		return err
	}

	products, err := h.service.ListVisibleProducts(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	data := newestFirst(products, recent)
	return c.JSON(http.StatusOK, listProductsResponse{Data: data, Count: len(data), Scope: scopeFor(actor)})
}

// ListAll handles GET /v1/admin/products — every product, optionally narrowed
// to one user. The admin gate is the RBAC middleware on the route group.
//
// @Summary      List all products (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        added_by  query     string  false  "Only products added by this username"
// @Success      200       {object}  listProductsResponse
// @Failure      401       {object}  ErrorResponse
// @Failure      403       {object}  ErrorResponse
// @Router       /v1/admin/products [get]
func (h *ProductHandler) ListAll(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	products, err := h.service.ListVisibleProducts(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	if addedBy := c.QueryParam("added_by"); addedBy != "" {
		filtered := products[:0:0]
		for _, p := range products {
			if p.AddedBy == addedBy {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	data := newestFirst(products, 0)
	return c.JSON(http.StatusOK, listProductsResponse{Data: data, Count: len(data), Scope: scopeFor(actor)})
}

func parseRecent(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "recent must be a positive integer")
	}
	return n, nil
}

// retailerBadges holds display colours for the retailer picker.
var retailerBadges = map[domain.Retailer][2]string{
	domain.RetailerAmazon:  {"bg-orange-100", "text-orange-800"},
	domain.RetailerBestBuy: {"bg-blue-100", "text-blue-800"},
}

// Retailers handles GET /v1/retailers.
//
// @Summary      List supported retailers
// @Tags         products
// @Produce      json
// @Success      200  {object}  listRetailersResponse
// @Router       /v1/retailers [get]
func (h *ProductHandler) Retailers(c echo.Context) error {
	retailers := domain.SupportedRetailers()
	data := make([]retailerResponse, 0, len(retailers))
	for _, r := range retailers {
		badge, ok := retailerBadges[r]
		if !ok {
			badge = [2]string{"bg-gray-100", "text-gray-800"}
		}
		data = append(data, retailerResponse{Name: string(r), BadgeColor: badge[0], TextColor: badge[1]})
	}
	return c.JSON(http.StatusOK, listRetailersResponse{Data: data})
}
