package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aetherid/console/client"
	"github.com/aetherid/console/client/auth/store"
	"github.com/aetherid/console/client/auth/transport"
	"github.com/aetherid/console/client/resource"
	"github.com/aetherid/console/schema"
	"github.com/redis/go-redis/v9"
)

// Credential store types.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

const (
	defaultTimeoutSeconds        = 30
	defaultRefreshTimeoutSeconds = 15
)

// ClientOptions
//
// defines options for configuring a console client.
type ClientOptions struct {
	BaseURL               string      `yaml:"baseURL" json:"baseURL,omitempty"  short:"u" long:"url" description:"console backend origin, /api is appended"`
	TimeoutSeconds        int         `yaml:"timeoutSeconds,omitempty" json:"timeoutSeconds,omitempty"  long:"timeout" description:"api call timeout in seconds"`
	RefreshTimeoutSeconds int         `yaml:"refreshTimeoutSeconds,omitempty" json:"refreshTimeoutSeconds,omitempty"  long:"refresh-timeout" description:"credential refresh timeout in seconds"`
	LoginRoute            string      `yaml:"loginRoute,omitempty" json:"loginRoute,omitempty"  long:"login-route" description:"route opened when the session ends"`
	Store                 ClientStore `yaml:"store,omitempty" json:"store,omitempty"`

	// CredentialStore, if set, replaces the store described by Store so that a
	// session can be shared with the caller.
	CredentialStore store.Store `yaml:"-" json:"-" no-flag:"true"`
	// Navigator receives the login route once the session cannot be refreshed.
	Navigator transport.Navigator `yaml:"-" json:"-" no-flag:"true"`
	Logger    *slog.Logger        `yaml:"-" json:"-" no-flag:"true"`
}

// ClientStore defines where the credential is kept.
type ClientStore struct {
	Type   string `yaml:"type" json:"type"  short:"s" long:"store" description:"credential store" choice:"memory" choice:"file" choice:"redis" choice:"sqlite"`
	URL    string `yaml:"url,omitempty" json:"url,omitempty"  long:"store-url" description:"file URL, redis address or sqlite dsn"`
	Prefix string `yaml:"prefix,omitempty" json:"prefix,omitempty"  long:"store-prefix" description:"redis key prefix"`
}

func (c *ClientOptions) Init() {
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.RefreshTimeoutSeconds == 0 {
		c.RefreshTimeoutSeconds = defaultRefreshTimeoutSeconds
	}
	if c.LoginRoute == "" {
		c.LoginRoute = transport.DefaultLoginRoute
	}
	if c.Store.Type == "" {
		c.Store.Type = StoreMemory
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
}

// Validate checks options required to build a client.
func (c *ClientOptions) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("base URL was empty")
	}
	switch c.Store.Type {
	case StoreMemory, StoreFile, StoreRedis, StoreSQLite:
	default:
		return fmt.Errorf("unsupported store type: %v", c.Store.Type)
	}
	if c.Store.Type != StoreMemory && c.Store.URL == "" && c.CredentialStore == nil {
		return fmt.Errorf("store URL was empty for %v store", c.Store.Type)
	}
	return nil
}

// Console is a client of the console backend with its resource services.
type Console struct {
	*client.Client
	Orders     *resource.Orders
	Users      *resource.Users
	Products   *resource.Products
	Customers  *resource.Service[schema.Customer]
	Categories *resource.Service[schema.Category]
	Brands     *resource.Service[schema.Brand]
	Warehouses *resource.Service[schema.Warehouse]
	Suppliers  *resource.Service[schema.Supplier]
	Vouchers   *resource.Service[schema.Voucher]
	Statistics *resource.Statistics
	closers    []io.Closer
}

// Close releases the credential store connection, if any.
func (c *Console) Close() error {
	var errs []error
	for _, closer := range c.closers {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}

// NewClient creates a console client configured via ClientOptions.
func NewClient(ctx context.Context, options *ClientOptions) (*Console, error) {
	options.Init()
	if err := options.Validate(); err != nil {
		return nil, err
	}
	ret := &Console{}
	credentials := options.CredentialStore
	if credentials == nil {
		var closer io.Closer
		var err error
		if credentials, closer, err = newStore(ctx, &options.Store); err != nil {
			return nil, err
		}
		if closer != nil {
			ret.closers = append(ret.closers, closer)
		}
	}
	clientOptions := []client.Option{
		client.WithStore(credentials),
		client.WithLogger(options.Logger),
		client.WithTimeout(time.Duration(options.TimeoutSeconds) * time.Second),
		client.WithRefreshTimeout(time.Duration(options.RefreshTimeoutSeconds) * time.Second),
		client.WithLoginRoute(options.LoginRoute),
	}
	if options.Navigator != nil {
		clientOptions = append(clientOptions, client.WithNavigator(options.Navigator))
	}
	api, err := client.New(options.BaseURL, clientOptions...)
	if err != nil {
		_ = ret.Close()
		return nil, err
	}
	ret.Client = api
	ret.Orders = resource.NewOrders(api)
	ret.Users = resource.NewUsers(api)
	ret.Products = resource.NewProducts(api)
	ret.Customers = resource.NewCustomers(api)
	ret.Categories = resource.NewCategories(api)
	ret.Brands = resource.NewBrands(api)
	ret.Warehouses = resource.NewWarehouses(api)
	ret.Suppliers = resource.NewSuppliers(api)
	ret.Vouchers = resource.NewVouchers(api)
	ret.Statistics = resource.NewStatistics(api)
	return ret, nil
}

// newStore builds the credential store described by options; the closer is nil when nothing needs releasing.
func newStore(ctx context.Context, options *ClientStore) (store.Store, io.Closer, error) {
	switch options.Type {
	case StoreFile:
		ret, err := store.NewFileStore(ctx, options.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open file store %v: %w", options.URL, err)
		}
		return ret, nil, nil
	case StoreRedis:
		redisOptions := &redis.Options{Addr: options.URL}
		if strings.Contains(options.URL, "://") {
			var err error
			if redisOptions, err = redis.ParseURL(options.URL); err != nil {
				return nil, nil, fmt.Errorf("invalid redis URL %v: %w", options.URL, err)
			}
		}
		redisClient := redis.NewClient(redisOptions)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			_ = redisClient.Close()
			return nil, nil, fmt.Errorf("failed to connect redis %v: %w", options.URL, err)
		}
		return store.NewRedisStore(redisClient, options.Prefix), redisClient, nil
	case StoreSQLite:
		ret, err := store.OpenSQLite(options.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store %v: %w", options.URL, err)
		}
		return ret, ret, nil
	default:
		return store.NewMemoryStore(), nil, nil
	}
}
