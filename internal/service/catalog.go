package service

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/peeringlatam/network-planner/internal/store"
	"github.com/peeringlatam/network-planner/internal/store/model"
	"github.com/peeringlatam/network-planner/pkg/log"
)

const (
	DefaultCatalogPageSize = 6
	FeedProvider           = "Peering Latam"
	catalogPath            = "/catalog"
)

type CatalogPage struct {
	Products      model.ProductList
	Page          int
	PageSize      int
	TotalPages    int
	TotalProducts int64
}

func (p CatalogPage) HasNext() bool {
	return p.Page < p.TotalPages
}

func (p CatalogPage) HasPrevious() bool {
	return p.Page > 1
}

// ProductFeed is the catalog export consumed by partner teams.
type ProductFeed struct {
	Status        string
	TotalProducts int
	Products      []FeedProduct
	Provider      string
	Timestamp     time.Time
}

type FeedProduct struct {
	ID          uint
	Name        string
	Description string
	Price       float64
	URL         string
	DetailURL   string
	// Images is nil when the product has none.
	Images []string
}

type CatalogService struct {
	store    store.Store
	pageSize int
	baseURL  *url.URL
	logger   *log.StructuredLogger
}

func NewCatalogService(store store.Store, baseURL string, pageSize int) (*CatalogService, error) {
	if pageSize <= 0 {
		pageSize = DefaultCatalogPageSize
	}
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, err
	}
	return &CatalogService{
		store:    store,
		pageSize: pageSize,
		baseURL:  base,
		logger:   log.NewDebugLogger("catalog_service"),
	}, nil
}

// GetPage returns one catalog page. A page that is not a number yields the first page and a
// page out of range yields the last one.
func (c *CatalogService) GetPage(ctx context.Context, rawPage string) (*CatalogPage, error) {
	total, err := c.store.Product().Count(ctx)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(c.pageSize) - 1) / int64(c.pageSize))
	if totalPages == 0 {
		totalPages = 1
	}

	page := ResolvePage(rawPage, totalPages)

	products, err := c.store.Product().List(ctx, store.NewQueryOptions().
		WithSortOrder(store.SortByID).
		WithLimit(c.pageSize).
		WithOffset((page-1)*c.pageSize))
	if err != nil {
		return nil, err
	}

	c.logger.WithContext(ctx).Operation("get_catalog_page").
		WithInt("page", page).
		WithInt("total_pages", totalPages).
		Build().
		Success().
		Log()

	return &CatalogPage{
		Products:      products,
		Page:          page,
		PageSize:      c.pageSize,
		TotalPages:    totalPages,
		TotalProducts: total,
	}, nil
}

// ResolvePage maps the requested page onto [1, totalPages].
func ResolvePage(raw string, totalPages int) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	if n < 1 || n > totalPages {
		return totalPages
	}
	return n
}

func (c *CatalogService) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	p, err := c.store.Product().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrProductNotFound(id)
		}
		return nil, err
	}
	return p, nil
}

func (c *CatalogService) ListProducts(ctx context.Context) (model.ProductList, error) {
	return c.store.Product().List(ctx, store.NewQueryOptions().WithSortOrder(store.SortByID))
}

// Feed exports the whole catalog with absolute links.
func (c *CatalogService) Feed(ctx context.Context) (*ProductFeed, error) {
	products, err := c.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	catalogURL := c.absolute(catalogPath)
	feed := &ProductFeed{
		Status:    "success",
		Products:  make([]FeedProduct, 0, len(products)),
		Provider:  FeedProvider,
		Timestamp: time.Now(),
	}

	for _, p := range products {
		item := FeedProduct{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price.InexactFloat64(),
			URL:         catalogURL,
			DetailURL:   c.absolute(catalogPath + "/" + strconv.FormatUint(uint64(p.ID), 10)),
		}
		for _, img := range p.Images {
			item.Images = append(item.Images, c.absolute(img.URL))
		}
		feed.Products = append(feed.Products, item)
	}
	feed.TotalProducts = len(feed.Products)

	return feed, nil
}

func (c *CatalogService) absolute(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if u.IsAbs() {
		return u.String()
	}
	return c.baseURL.JoinPath(u.Path).String()
}
