package main

// @title Warehouse Inventory API
// @version 1.0
// @description Stock ledger for warehouses and products with capacity enforcement and atomic transfers.

// @contact.name API Support
// @contact.url http://github.com/tair/warehouse-inventory

// @license.name MIT

// @host localhost:8082
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Inventory
// @tag.description Stock ledger endpoints

// @tag.name Products
// @tag.description Product catalog endpoints

// @tag.name Warehouses
// @tag.description Warehouse endpoints

// @tag.name Health
// @tag.description Health check endpoints
