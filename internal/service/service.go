package service

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"swapnest/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Store interfaces consumed by the services; satisfied by the repository
// structs and by fakes in tests.

type userStore interface {
	GetUserByID(ctx context.Context, id int) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	ListUsers(ctx context.Context) ([]entity.User, error)
	DeleteUser(ctx context.Context, id int) error
}

type categoryStore interface {
	GetCategoryByID(ctx context.Context, id int) (*entity.Category, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
	CreateCategory(ctx context.Context, cat *entity.Category) (*entity.Category, error)
	UpdateCategory(ctx context.Context, cat *entity.Category) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id int) error
}

type productStore interface {
	GetProductByID(ctx context.Context, id int) (*entity.Product, error)
	ListProducts(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error)
	CreateProduct(ctx context.Context, p *entity.Product) (*entity.Product, error)
	UpdateProduct(ctx context.Context, p *entity.Product) (*entity.Product, error)
	SoftDeleteProduct(ctx context.Context, id int) error
}

type imageStore interface {
	GetImageByID(ctx context.Context, id int) (*entity.ProductImage, error)
	ListImagesByProduct(ctx context.Context, productID int) ([]entity.ProductImage, error)
	CreateImage(ctx context.Context, img *entity.ProductImage) (*entity.ProductImage, error)
	UpdateImage(ctx context.Context, img *entity.ProductImage) (*entity.ProductImage, error)
	DeleteImage(ctx context.Context, id int) error
}

type cartStore interface {
	GetOrCreateCart(ctx context.Context, userID int) (*entity.Cart, error)
	ListItems(ctx context.Context, cartID int) ([]entity.CartItem, error)
	HasProduct(ctx context.Context, cartID, productID int) (bool, error)
	AddItem(ctx context.Context, cartID, productID, quantity int) (int, error)
	RemoveItem(ctx context.Context, cartID, itemID int) error
	ClearCart(ctx context.Context, cartID int) error
}

type settler interface {
	Settle(ctx context.Context, buyerID int) (*entity.Order, error)
}

type orderStore interface {
	GetOrderByID(ctx context.Context, id int) (*entity.Order, error)
	ListOrdersByUser(ctx context.Context, userID int) ([]entity.Order, error)
	ListAllOrders(ctx context.Context) ([]entity.Order, error)
	UpdateOrderStatus(ctx context.Context, id int, status string) error
	DeleteOrder(ctx context.Context, id int) error
}

type transactionStore interface {
	GetTransactionByID(ctx context.Context, id int) (*entity.Transaction, error)
	ListTransactionsByUser(ctx context.Context, userID int) ([]entity.Transaction, error)
	ListAllTransactions(ctx context.Context) ([]entity.Transaction, error)
	CreateTransaction(ctx context.Context, t *entity.Transaction) (*entity.Transaction, error)
}

type reportStore interface {
	GetReportByID(ctx context.Context, id int) (*entity.Report, error)
	ListReportsByReporter(ctx context.Context, reporterID int) ([]entity.Report, error)
	ListAllReports(ctx context.Context) ([]entity.Report, error)
	CreateReport(ctx context.Context, rep *entity.Report) (*entity.Report, error)
	UpdateReportStatus(ctx context.Context, id int, status string, reviewerID int) (*entity.Report, error)
	DeleteReport(ctx context.Context, id int) error
}

type chatStore interface {
	CreateConversation(ctx context.Context, productID *int, creatorID int) (*entity.Conversation, error)
	GetConversationByID(ctx context.Context, id int) (*entity.Conversation, error)
	ListConversationsByUser(ctx context.Context, userID int) ([]entity.Conversation, error)
	IsParticipant(ctx context.Context, conversationID, userID int) (bool, error)
	AddParticipant(ctx context.Context, conversationID, userID int) error
	CreateMessage(ctx context.Context, msg *entity.Message) (*entity.Message, error)
	ListMessages(ctx context.Context, conversationID int) ([]entity.Message, error)
	MarkMessagesRead(ctx context.Context, conversationID, readerID int) error
}
