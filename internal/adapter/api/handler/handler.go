package handler

import (
	"gamerverse/internal/infrastructure/task"
	"gamerverse/internal/usecase"
)

var (
	gameHandler     *GameHandler
	cartHandler     *CartHandler
	checkoutHandler *CheckoutHandler
	orderHandler    *OrderHandler
	userHandler     *UserHandler
	settingsHandler *SettingsHandler
	contactHandler  *ContactHandler
	adminHandler    *AdminHandler
	taskHandler     *TaskHandler
)

func Setup(
	gameUseCase *usecase.GameUseCase,
	cartUseCase *usecase.CartUseCase,
	checkoutUseCase *usecase.CheckoutUseCase,
	orderUseCase *usecase.OrderUseCase,
	userUseCase *usecase.UserUseCase,
	roleUseCase *usecase.RoleUseCase,
	settingsUseCase *usecase.SettingsUseCase,
	contactUseCase *usecase.ContactUseCase,
	adminUseCase *usecase.AdminUseCase,
	runner *task.Runner,
) {
	gameHandler = NewGameHandler(gameUseCase)
	cartHandler = NewCartHandler(cartUseCase)
	checkoutHandler = NewCheckoutHandler(checkoutUseCase)
	orderHandler = NewOrderHandler(orderUseCase)
	userHandler = NewUserHandler(userUseCase, roleUseCase)
	settingsHandler = NewSettingsHandler(settingsUseCase)
	contactHandler = NewContactHandler(contactUseCase)
	adminHandler = NewAdminHandler(adminUseCase)
	taskHandler = NewTaskHandler(runner)
}

func GetGameHandler() *GameHandler {
	return gameHandler
}

func GetCartHandler() *CartHandler {
	return cartHandler
}

func GetCheckoutHandler() *CheckoutHandler {
	return checkoutHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetSettingsHandler() *SettingsHandler {
	return settingsHandler
}

func GetContactHandler() *ContactHandler {
	return contactHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}

func GetTaskHandler() *TaskHandler {
	return taskHandler
}
