package controllers

import (
	"net/http"

	"github.com/UlyssesVaz/SoundCreditUnion/config"
	"github.com/UlyssesVaz/SoundCreditUnion/models"
	"github.com/UlyssesVaz/SoundCreditUnion/services"

	"github.com/gin-gonic/gin"
)

func ListProducts(c *gin.Context) {
	productType := models.ProductType(c.Query("type"))
	switch productType {
	case "", models.ProductTypeLoan, models.ProductTypeCreditCard,
		models.ProductTypeSavingsAccount, models.ProductTypeCheckingAccount:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product type: " + string(productType)})
		return
	}

	products, err := services.ListProducts(config.DB, productType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "total": len(products)})
}
