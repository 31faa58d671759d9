package main

import (
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SadiniWanniarachchi/PharmacySyatem/internal/models"
	"github.com/SadiniWanniarachchi/PharmacySyatem/internal/validator"
)

func (app *application) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := app.DB.GetVisibleProducts(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"success": true, "count": len(products), "products": products})
}

func (app *application) listAllProducts(w http.ResponseWriter, r *http.Request) {
	products, err := app.DB.GetAllProducts(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"success": true, "count": len(products), "products": products})
}

func (app *application) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := app.DB.GetProduct(r.Context(), r.URL.Query().Get(":id"))
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.fail(w, http.StatusNotFound, "Product not found")
			return
		}
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"success": true, "product": p})
}

func (app *application) listProductsByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := app.DB.GetProductsByCategory(r.Context(), r.URL.Query().Get(":category"))
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"success": true, "count": len(products), "products": products})
}

func (app *application) listSupplierProducts(w http.ResponseWriter, r *http.Request) {
	user := app.currentUser(r)
	products, err := app.DB.GetProductsBySupplier(r.Context(), user.ID)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"success": true, "count": len(products), "products": products})
}

type productRequest struct {
	Name                 string    `json:"name"`
	Price                *float64  `json:"price"`
	Image                string    `json:"image"`
	Category             string    `json:"category"`
	Description          string    `json:"description"`
	Quantity             *int      `json:"quantity"`
	Brand                string    `json:"brand"`
	ExpiryDate           time.Time `json:"expiryDate"`
	PrescriptionRequired *bool     `json:"prescriptionRequired"`
}

func (app *application) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	if !validator.Required(req.Name) || !validator.Required(req.Image) ||
		!validator.Required(req.Description) || !validator.Required(req.Brand) {
		app.fail(w, http.StatusBadRequest, "All product fields are required")
		return
	}
	if !models.ValidCategory(req.Category) {
		app.fail(w, http.StatusBadRequest, "Invalid product category")
		return
	}
	if req.Price == nil || *req.Price < 0 {
		app.fail(w, http.StatusBadRequest, "Price must be zero or positive")
		return
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		app.fail(w, http.StatusBadRequest, "Quantity cannot be negative")
		return
	}
	if !req.ExpiryDate.After(time.Now()) {
		app.fail(w, http.StatusBadRequest, "Expiry date must be in the future")
		return
	}

	p := &models.Product{
		Name:        req.Name,
		Price:       *req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Description: req.Description,
		Supplier:    app.currentUser(r).ID,
		Brand:       req.Brand,
		ExpiryDate:  req.ExpiryDate,
	}
	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}
	if req.PrescriptionRequired != nil {
		p.PrescriptionRequired = *req.PrescriptionRequired
	}

	if err := app.DB.InsertProduct(r.Context(), p); err != nil {
		app.serverError(w, err)
		return
	}

	app.writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "Product created successfully",
		"product": p,
	})
}

// supplierProduct loads the product at :id and checks it belongs to the
// requesting supplier.
func (app *application) supplierProduct(w http.ResponseWriter, r *http.Request) *models.Product {
	p, err := app.DB.GetProduct(r.Context(), r.URL.Query().Get(":id"))
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.fail(w, http.StatusNotFound, "Product not found")
			return nil
		}
		app.serverError(w, err)
		return nil
	}
	if p.Supplier != app.currentUser(r).ID {
		app.fail(w, http.StatusForbidden, "Not authorized to modify this product")
		return nil
	}
	return p
}

func (app *application) updateProduct(w http.ResponseWriter, r *http.Request) {
	p := app.supplierProduct(w, r)
	if p == nil {
		return
	}

	var req productRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	// absent fields keep their current values
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			app.fail(w, http.StatusBadRequest, "Price must be zero or positive")
			return
		}
		p.Price = *req.Price
	}
	if req.Image != "" {
		p.Image = req.Image
	}
	if req.Category != "" {
		if !models.ValidCategory(req.Category) {
			app.fail(w, http.StatusBadRequest, "Invalid product category")
			return
		}
		p.Category = req.Category
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.Brand != "" {
		p.Brand = req.Brand
	}
	if !req.ExpiryDate.IsZero() {
		if !req.ExpiryDate.After(time.Now()) {
			app.fail(w, http.StatusBadRequest, "Expiry date must be in the future")
			return
		}
		p.ExpiryDate = req.ExpiryDate
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			app.fail(w, http.StatusBadRequest, "Quantity cannot be negative")
			return
		}
		p.Quantity = *req.Quantity
	}
	if req.PrescriptionRequired != nil {
		p.PrescriptionRequired = *req.PrescriptionRequired
	}

	if err := app.DB.UpdateProduct(r.Context(), p); err != nil {
		app.serverError(w, err)
		return
	}

	app.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Product updated successfully",
		"product": p,
	})
}

func (app *application) updateProductQuantity(w http.ResponseWriter, r *http.Request) {
	p := app.supplierProduct(w, r)
	if p == nil {
		return
	}

	var req struct {
		Quantity *int `json:"quantity"`
	}
	if !app.readJSON(w, r, &req) {
		return
	}
	if req.Quantity == nil || *req.Quantity < 0 {
		app.fail(w, http.StatusBadRequest, "Quantity cannot be negative")
		return
	}

	if err := app.DB.UpdateProductQuantity(r.Context(), p.ID, *req.Quantity); err != nil {
		app.serverError(w, err)
		return
	}
	p.Quantity = *req.Quantity
	p.OutOfStock = p.Quantity <= 0

	app.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Product quantity updated successfully",
		"product": p,
	})
}

func (app *application) deleteProduct(w http.ResponseWriter, r *http.Request) {
	p := app.supplierProduct(w, r)
	if p == nil {
		return
	}

	if err := app.DB.DeleteProduct(r.Context(), p.ID); err != nil {
		app.serverError(w, err)
		return
	}

	app.writeJSON(w, http.StatusOK, envelope{"success": true, "message": "Product deleted successfully"})
}

func (app *application) toggleProductVisibility(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.URL.Query().Get(":id"))
	if err != nil {
		app.fail(w, http.StatusNotFound, "Product not found")
		return
	}

	p, err := app.DB.ToggleProductVisibility(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.fail(w, http.StatusNotFound, "Product not found")
			return
		}
		app.serverError(w, err)
		return
	}

	message := "Product hidden in shop"
	if p.IsVisible {
		message = "Product shown in shop"
	}
	app.writeJSON(w, http.StatusOK, envelope{"success": true, "message": message, "product": p})
}
