package routes

import (
	"net/http"

	"bazaar/address"
	"bazaar/auth"
	"bazaar/cart"
	"bazaar/category"
	"bazaar/idemp"
	"bazaar/middleware"
	"bazaar/models"
	"bazaar/orders"
	"bazaar/payments"
	"bazaar/products"
	"bazaar/profile"
	"bazaar/ratelim"
	"bazaar/reviews"
	"bazaar/shipments"
	"bazaar/utils"
	"bazaar/wishlist"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/userpic/*filepath", http.Dir("static/userpic"))
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddHealthRoutes(router *httprouter.Router) {
	router.GET("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		utils.SendEnvelope(w, http.StatusOK, utils.M{"status": "ok"}, "Service is healthy")
	})
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/v1/users/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/v1/users/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/v1/users/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/v1/users/refresh-token", ratelim.RateLimit(auth.RefreshToken))

	router.GET("/api/v1/users/current-user", middleware.Authenticate(profile.GetCurrentUser))
	router.PATCH("/api/v1/users/update-password", middleware.Authenticate(profile.UpdatePassword))
	router.PATCH("/api/v1/users/update-account-details", middleware.Authenticate(profile.UpdateAccountDetails))
	router.PATCH("/api/v1/users/update-account-avatar", middleware.Authenticate(profile.UpdateAvatar))
	router.PATCH("/api/v1/users/change-role/:userid",
		middleware.Authenticate(middleware.RequireRole(profile.ChangeRole, models.RoleSuperAdmin)))
}

func AddAddressRoutes(router *httprouter.Router) {
	router.POST("/api/v1/address/create-address", middleware.Authenticate(address.AddAddress))
	router.GET("/api/v1/address/my-addresses", middleware.Authenticate(address.GetAllAddressesOfUser))
	router.GET("/api/v1/address/get-address/:addressId", middleware.Authenticate(address.GetAddressByID))
	router.PATCH("/api/v1/address/update-address/:addressId", middleware.Authenticate(address.UpdateAddress))
	router.DELETE("/api/v1/address/delete-address/:addressId", middleware.Authenticate(address.DeleteAddress))
}

func AddCategoryRoutes(router *httprouter.Router) {
	router.POST("/api/v1/category/create-category",
		middleware.Authenticate(middleware.RequireRole(category.CreateCategory, models.RoleAdmin, models.RoleSuperAdmin)))
	router.GET("/api/v1/category/all-categories", category.GetAllCategories)
	router.GET("/api/v1/category/get-category/:categoryId", category.GetCategoryByID)
	router.PATCH("/api/v1/category/update-category/:categoryId",
		middleware.Authenticate(middleware.RequireRole(category.UpdateCategory, models.RoleAdmin, models.RoleSuperAdmin)))
	router.DELETE("/api/v1/category/delete-category/:categoryId",
		middleware.Authenticate(middleware.RequireRole(category.DeleteCategory, models.RoleAdmin, models.RoleSuperAdmin)))
}

func AddProductRoutes(router *httprouter.Router) {
	router.POST("/api/v1/product/product-listing/:categoryId",
		middleware.Authenticate(middleware.RequireRole(products.ListProduct, models.RoleAdmin, models.RoleSuperAdmin)))
	router.GET("/api/v1/product/get-all-products", products.SearchProducts)
	router.GET("/api/v1/product/get-product/:productId", products.GetProduct)
	router.PATCH("/api/v1/product/update-product/:productId",
		middleware.Authenticate(middleware.RequireRole(products.UpdateProduct, models.RoleAdmin, models.RoleSuperAdmin)))
	router.PATCH("/api/v1/product/update-product-images/:productId",
		middleware.Authenticate(middleware.RequireRole(products.AddProductImages, models.RoleAdmin, models.RoleSuperAdmin)))
	router.DELETE("/api/v1/product/delete-product/:productId",
		middleware.Authenticate(middleware.RequireRole(products.DeleteProduct, models.RoleAdmin, models.RoleSuperAdmin)))
}

func AddCartRoutes(router *httprouter.Router) {
	router.POST("/api/v1/cart/create-cart", middleware.Authenticate(cart.CreateCart))
	router.GET("/api/v1/cart/get-cart", middleware.Authenticate(cart.GetCart))
	router.POST("/api/v1/cart/add-product/:productId", middleware.Authenticate(cart.AddProductToCart))
	router.DELETE("/api/v1/cart/remove-product/:productId", middleware.Authenticate(cart.RemoveProductFromCart))
	router.DELETE("/api/v1/cart/remove-same-products/:productId", middleware.Authenticate(cart.RemoveAllSameProductFromCart))
	router.DELETE("/api/v1/cart/delete-cart", middleware.Authenticate(cart.DeleteCart))
}

func AddWishlistRoutes(router *httprouter.Router) {
	router.POST("/api/v1/wishlist/create-wishlist", middleware.Authenticate(wishlist.CreateWishlist))
	router.GET("/api/v1/wishlist/get-wishlist", middleware.Authenticate(wishlist.GetWishlist))
	router.POST("/api/v1/wishlist/add-product-wishlist/:productId", middleware.Authenticate(wishlist.AddProductToWishlist))
	router.DELETE("/api/v1/wishlist/remove-product-wishlist/:productId", middleware.Authenticate(wishlist.RemoveProductFromWishlist))
	router.DELETE("/api/v1/wishlist/delete-wishlist", middleware.Authenticate(wishlist.DeleteWishlist))
}

func AddReviewRoutes(router *httprouter.Router) {
	router.POST("/api/v1/review/create-review/:productId", middleware.Authenticate(reviews.CreateReview))
	router.GET("/api/v1/review/product-reviews/:productId", reviews.GetReviewsByProduct)
	router.GET("/api/v1/review/my-reviews", middleware.Authenticate(reviews.GetMyReviews))
	router.GET("/api/v1/review/get-review/:reviewId", reviews.GetReviewByID)
	router.PATCH("/api/v1/review/update-review/:reviewId", middleware.Authenticate(reviews.UpdateReview))
	router.DELETE("/api/v1/review/delete-review/:reviewId", middleware.Authenticate(reviews.DeleteReview))
}

func AddOrderRoutes(router *httprouter.Router) {
	router.POST("/api/v1/order/create-single-order/:productId/:addressId",
		middleware.Authenticate(idemp.Guard(orders.CreateSingleOrder)))
	router.POST("/api/v1/order/create-cart-order/:cartId/:addressId",
		middleware.Authenticate(idemp.Guard(orders.CreateCartOrder)))
	router.GET("/api/v1/order/my-orders", middleware.Authenticate(orders.GetMyOrders))
	router.GET("/api/v1/order/get-order/:orderId", middleware.Authenticate(orders.GetOrder))
}

func AddPaymentRoutes(router *httprouter.Router) {
	router.POST("/api/v1/payment/verify-payment/:orderId",
		middleware.Authenticate(idemp.Guard(payments.VerifyPayment)))
}

func AddShipmentRoutes(router *httprouter.Router) {
	router.GET("/api/v1/shipment/track/:orderId", middleware.Authenticate(shipments.TrackShipment))
	router.GET("/api/v1/shipment/label/:orderId", middleware.Authenticate(shipments.PrintShippingLabel))
}
