package service

import (
	"go-inventory-shop/internal/model"
	"go-inventory-shop/internal/repository"
)

type DashboardService interface {
	GetInventoryStats() (*model.InventoryStats, error)
}

type dashboardService struct {
	itemRepo repository.ItemRepository
}

func NewDashboardService(itemRepo repository.ItemRepository) DashboardService {
	return &dashboardService{itemRepo: itemRepo}
}

func (s *dashboardService) GetInventoryStats() (*model.InventoryStats, error) {
	return s.itemRepo.Stats()
}
