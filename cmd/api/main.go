package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-market-orders/internal/handler"
	"go-market-orders/internal/middleware"
	"go-market-orders/internal/model"
	"go-market-orders/internal/repository"
	"go-market-orders/internal/service"
	"go-market-orders/internal/ws"
	"go-market-orders/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto migrate (use a dedicated migration tool in production)
	db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.InventoryRecord{},
		&model.Order{},
		&model.OrderItem{},
		&model.DailySale{},
		&model.SaleDetail{},
	)

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	saleRepo := repository.NewSaleRepo(db)

	authService := service.NewAuthService(userRepo)
	productService := service.NewProductService(productRepo)
	inventoryService := service.NewInventoryService(inventoryRepo, productRepo, wsHub)
	salesService := service.NewSalesService(saleRepo, productRepo, db)
	orderService := service.NewOrderService(orderRepo, productRepo, inventoryService, salesService, db, wsHub)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	orderHandler := handler.NewOrderHandler(orderService)
	salesHandler := handler.NewSalesHandler(salesService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Market Orders API v1.0",
	})

	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	api := app.Group("/api/v1")

	// Public auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// All routes below require authentication
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Product catalog (seller-scoped)
	products := protected.Group("/products", middleware.RequireRole(model.RoleSeller))
	products.Get("/", productHandler.GetProducts)
	products.Post("/", productHandler.CreateProduct)
	products.Get("/:id", productHandler.GetProduct)
	products.Put("/:id", productHandler.UpdateProduct)
	products.Delete("/:id", productHandler.DeleteProduct)

	// Inventory (seller-scoped)
	inventory := protected.Group("/inventory", middleware.RequireRole(model.RoleSeller))
	inventory.Post("/", inventoryHandler.AddStock)
	inventory.Get("/product/:id", inventoryHandler.GetHistory)

	// Orders
	orders := protected.Group("/orders")
	orders.Post("/", middleware.RequireRole(model.RoleBuyer), orderHandler.CreateOrder)
	orders.Post("/:id/accept", middleware.RequireRole(model.RoleSeller), orderHandler.AcceptOrder)
	orders.Post("/:id/reject", middleware.RequireRole(model.RoleSeller), orderHandler.RejectOrder)
	orders.Post("/:id/deliver", orderHandler.DeliverOrder) // buyer or seller
	orders.Get("/purchases", orderHandler.GetPurchases)
	orders.Get("/sales", middleware.RequireRole(model.RoleSeller), orderHandler.GetSales)

	// Daily sales rollups (seller-scoped)
	sales := protected.Group("/sales", middleware.RequireRole(model.RoleSeller))
	sales.Get("/today", salesHandler.GetToday)
	sales.Get("/history", salesHandler.GetHistory)
	sales.Get("/roi", salesHandler.GetROI)
	sales.Post("/close-day", salesHandler.CloseDay)

	// WebSocket route for live order/stock events
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register(c)
		defer wsHub.Unregister(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	wsHub.Close()
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
