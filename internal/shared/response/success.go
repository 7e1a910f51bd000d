package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes data as a 200 JSON response.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created writes data as a 201 JSON response.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}
