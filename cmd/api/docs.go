//go:generate swag init -g docs.go -o ../../docs --parseDependency --parseInternal --dir .,../../internal/httpapi

package main

// @title Varejão Online API
// @version 2.0
// @description Backend da loja Varejão Online: clientes, produtos e pedidos.
// @BasePath /
