package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/vrcorp/videohive/internal/app"
	"github.com/vrcorp/videohive/internal/domain"
)

// Services bundles everything the API surface needs.
type Services struct {
	Identity    *app.Identity
	Roles       *app.RoleStore
	Cart        *app.Cart
	Wishlist    *app.Wishlist
	Coordinator *app.Coordinator
	TenantAuth  *app.TenantAuth
	Directory   *app.Directory

	// AdminGuard protects the directory management routes.
	AdminGuard *app.RoleGuard
}

// --- Session ---

type SessionResponse struct {
	State   string `json:"state" doc:"Session state (anonymous or identified)"`
	Role    string `json:"role" doc:"Current marketplace role"`
	GuestID string `json:"guestId,omitempty" doc:"Anonymous identity, empty once promoted"`
}

type GetSessionOutput struct {
	Body SessionResponse
}

// --- Role ---

type RoleResponse struct {
	Role string `json:"role" doc:"Current marketplace role"`
}

type GetRoleOutput struct {
	Body RoleResponse
}

type SetRoleInput struct {
	Body struct {
		Role string `json:"role" enum:"guest,user,instructor,admin,super_admin,affiliator" doc:"Role to assume"`
	}
}

type SetRoleOutput struct {
	Body RoleResponse
}

type ClearRoleOutput struct {
	Body RoleResponse
}

// --- Cart / wishlist ---

type CartStateResponse struct {
	Items []domain.CartItem `json:"items" doc:"Items in stored order"`
	Count int               `json:"count" doc:"Number of items"`
	Total float64           `json:"total" doc:"Sum of item prices"`
}

type GetCartOutput struct {
	Body CartStateResponse
}

type AddCartItemInput struct {
	Body domain.CartItem
}

type AddCartItemOutput struct {
	Body struct {
		Added  bool              `json:"added" doc:"False when the item was already present"`
		Notice string            `json:"notice,omitempty" doc:"Set when the item was already present"`
		State  CartStateResponse `json:"state"`
	}
}

type RemoveCartItemInput struct {
	ID string `path:"id" doc:"Item ID"`
}

type RemoveCartItemOutput struct {
	Body CartStateResponse
}

type ClearCartOutput struct {
	Body CartStateResponse
}

type WishlistStateResponse struct {
	Items []domain.WishlistItem `json:"items" doc:"Items in stored order"`
	Count int                   `json:"count" doc:"Number of items"`
}

type GetWishlistOutput struct {
	Body WishlistStateResponse
}

type AddWishlistItemInput struct {
	Body domain.WishlistItem
}

type AddWishlistItemOutput struct {
	Body struct {
		Added  bool                  `json:"added" doc:"False when the item was already present"`
		Notice string                `json:"notice,omitempty" doc:"Set when the item was already present"`
		State  WishlistStateResponse `json:"state"`
	}
}

type RemoveWishlistItemInput struct {
	ID string `path:"id" doc:"Item ID"`
}

type RemoveWishlistItemOutput struct {
	Body WishlistStateResponse
}

type ClearWishlistOutput struct {
	Body WishlistStateResponse
}

// --- Tenant auth ---

type TenantLoginInput struct {
	Slug string `path:"slug" doc:"Tenant slug"`
	Body struct {
		Email    string `json:"email" format:"email" doc:"Account email"`
		Password string `json:"password" doc:"Account password"`
		Role     string `json:"role,omitempty" enum:",guest,user,instructor,admin,super_admin,affiliator" doc:"Role override; empty keeps the account role"`
	}
}

type TenantLoginOutput struct {
	Body struct {
		User       domain.TenantUser `json:"user"`
		TenantSlug string            `json:"tenantSlug"`
	}
}

type TenantSessionInput struct {
	Slug string `path:"slug" doc:"Tenant slug"`
}

type TenantSessionOutput struct {
	Body struct {
		Authenticated bool               `json:"authenticated"`
		Role          string             `json:"role" doc:"Session role, guest when unauthenticated"`
		User          *domain.TenantUser `json:"user,omitempty"`
	}
}

type TenantLogoutInput struct {
	Slug string `path:"slug" doc:"Tenant slug"`
}

type TenantLogoutOutput struct {
	Body struct {
		Authenticated bool `json:"authenticated"`
	}
}

// --- Directory ---

type TenantResponse struct {
	ID          string `json:"id" doc:"Unique identifier"`
	Name        string `json:"name" doc:"Display name"`
	Slug        string `json:"slug" doc:"URL-friendly identifier"`
	LogoURL     string `json:"logoUrl,omitempty" doc:"Branding logo"`
	AccentColor string `json:"accentColor,omitempty" doc:"Branding accent color"`
	CreatedAt   string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt   string `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toTenantResponse(t domain.Tenant) TenantResponse {
	return TenantResponse{
		ID:          t.ID,
		Name:        t.Name,
		Slug:        t.Slug,
		LogoURL:     t.LogoURL,
		AccentColor: t.AccentColor,
		CreatedAt:   t.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   t.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

type CreateTenantInput struct {
	Body struct {
		Name string `json:"name" minLength:"1" maxLength:"255" doc:"Display name"`
		Slug string `json:"slug" minLength:"1" maxLength:"100" pattern:"^[a-z0-9]+(?:-[a-z0-9]+)*$" doc:"URL-friendly identifier (lowercase, hyphens)"`
	}
}

type CreateTenantOutput struct {
	Body TenantResponse
}

type GetTenantInput struct {
	Slug string `path:"slug" doc:"Tenant slug"`
}

type GetTenantOutput struct {
	Body TenantResponse
}

type ListTenantsOutput struct {
	Body []TenantResponse
}

type CreateAccountInput struct {
	Body struct {
		Email      string `json:"email" format:"email" doc:"Account email"`
		Name       string `json:"name" minLength:"1" maxLength:"255" doc:"Display name"`
		Role       string `json:"role" enum:"guest,user,instructor,admin,super_admin,affiliator" doc:"Directory role"`
		Password   string `json:"password,omitempty" doc:"Password; empty marks a demo account"`
		OwnsTenant bool   `json:"ownsTenant,omitempty" doc:"Grants access to tenant admin views"`
	}
}

type CreateAccountOutput struct {
	Body struct {
		ID         string `json:"id"`
		Email      string `json:"email"`
		Name       string `json:"name"`
		Role       string `json:"role"`
		OwnsTenant bool   `json:"ownsTenant"`
	}
}

// Register adds all API routes to the Huma API.
func Register(api huma.API, svc Services) {
	registerSession(api, svc)
	registerCart(api, svc)
	registerWishlist(api, svc)
	registerTenantAuth(api, svc)
	registerDirectory(api, svc)
}

func registerSession(api huma.API, svc Services) {
	huma.Register(api, huma.Operation{
		OperationID: "get-session",
		Method:      http.MethodGet,
		Path:        "/api/v1/session",
		Summary:     "Get the current session state",
		Tags:        []string{"Session"},
	}, func(ctx context.Context, _ *struct{}) (*GetSessionOutput, error) {
		return &GetSessionOutput{Body: SessionResponse{
			State:   string(svc.Coordinator.State()),
			Role:    string(svc.Roles.Get(ctx)),
			GuestID: svc.Identity.Peek(ctx),
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-role",
		Method:      http.MethodGet,
		Path:        "/api/v1/role",
		Summary:     "Get the current role",
		Tags:        []string{"Session"},
	}, func(ctx context.Context, _ *struct{}) (*GetRoleOutput, error) {
		return &GetRoleOutput{Body: RoleResponse{Role: string(svc.Roles.Get(ctx))}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "set-role",
		Method:      http.MethodPut,
		Path:        "/api/v1/role",
		Summary:     "Set the current role",
		Description: "Assuming an authenticated role for the first time promotes the guest session and migrates its cart and wishlist.",
		Tags:        []string{"Session"},
	}, func(ctx context.Context, input *SetRoleInput) (*SetRoleOutput, error) {
		if err := svc.Roles.Set(ctx, domain.ParseRole(input.Body.Role)); err != nil {
			return nil, toHumaError(err)
		}
		return &SetRoleOutput{Body: RoleResponse{Role: string(svc.Roles.Get(ctx))}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "clear-role",
		Method:      http.MethodDelete,
		Path:        "/api/v1/role",
		Summary:     "Clear the current role",
		Tags:        []string{"Session"},
	}, func(ctx context.Context, _ *struct{}) (*ClearRoleOutput, error) {
		if err := svc.Roles.Clear(ctx); err != nil {
			return nil, toHumaError(err)
		}
		return &ClearRoleOutput{Body: RoleResponse{Role: string(domain.RoleGuest)}}, nil
	})
}

func (svc Services) cartState(ctx context.Context) CartStateResponse {
	items := svc.Cart.Items(ctx)
	if items == nil {
		items = []domain.CartItem{}
	}
	return CartStateResponse{
		Items: items,
		Count: len(items),
		Total: svc.Cart.TotalPrice(ctx),
	}
}

func (svc Services) wishlistState(ctx context.Context) WishlistStateResponse {
	items := svc.Wishlist.Items(ctx)
	if items == nil {
		items = []domain.WishlistItem{}
	}
	return WishlistStateResponse{
		Items: items,
		Count: len(items),
	}
}

func registerCart(api huma.API, svc Services) {
	huma.Register(api, huma.Operation{
		OperationID: "get-cart",
		Method:      http.MethodGet,
		Path:        "/api/v1/cart",
		Summary:     "Get the cart for the active session",
		Tags:        []string{"Cart"},
	}, func(ctx context.Context, _ *struct{}) (*GetCartOutput, error) {
		return &GetCartOutput{Body: svc.cartState(ctx)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "add-cart-item",
		Method:      http.MethodPost,
		Path:        "/api/v1/cart/items",
		Summary:     "Add a course to the cart",
		Tags:        []string{"Cart"},
	}, func(ctx context.Context, input *AddCartItemInput) (*AddCartItemOutput, error) {
		added, err := svc.Cart.Add(ctx, input.Body)
		if err != nil {
			return nil, toHumaError(err)
		}
		out := &AddCartItemOutput{}
		out.Body.Added = added
		if !added {
			out.Body.Notice = (&domain.DuplicateItemError{Kind: domain.KindCart, ID: input.Body.ID}).Error()
		}
		out.Body.State = svc.cartState(ctx)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "remove-cart-item",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cart/items/{id}",
		Summary:     "Remove a course from the cart",
		Tags:        []string{"Cart"},
	}, func(ctx context.Context, input *RemoveCartItemInput) (*RemoveCartItemOutput, error) {
		if err := svc.Cart.Remove(ctx, input.ID); err != nil {
			return nil, toHumaError(err)
		}
		return &RemoveCartItemOutput{Body: svc.cartState(ctx)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "clear-cart",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cart",
		Summary:     "Empty the cart",
		Tags:        []string{"Cart"},
	}, func(ctx context.Context, _ *struct{}) (*ClearCartOutput, error) {
		if err := svc.Cart.Clear(ctx); err != nil {
			return nil, toHumaError(err)
		}
		return &ClearCartOutput{Body: svc.cartState(ctx)}, nil
	})
}

func registerWishlist(api huma.API, svc Services) {
	huma.Register(api, huma.Operation{
		OperationID: "get-wishlist",
		Method:      http.MethodGet,
		Path:        "/api/v1/wishlist",
		Summary:     "Get the wishlist for the active session",
		Tags:        []string{"Wishlist"},
	}, func(ctx context.Context, _ *struct{}) (*GetWishlistOutput, error) {
		return &GetWishlistOutput{Body: svc.wishlistState(ctx)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "add-wishlist-item",
		Method:      http.MethodPost,
		Path:        "/api/v1/wishlist/items",
		Summary:     "Add a course to the wishlist",
		Tags:        []string{"Wishlist"},
	}, func(ctx context.Context, input *AddWishlistItemInput) (*AddWishlistItemOutput, error) {
		added, err := svc.Wishlist.Add(ctx, input.Body)
		if err != nil {
			return nil, toHumaError(err)
		}
		out := &AddWishlistItemOutput{}
		out.Body.Added = added
		if !added {
			out.Body.Notice = (&domain.DuplicateItemError{Kind: domain.KindWishlist, ID: input.Body.ID}).Error()
		}
		out.Body.State = svc.wishlistState(ctx)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "remove-wishlist-item",
		Method:      http.MethodDelete,
		Path:        "/api/v1/wishlist/items/{id}",
		Summary:     "Remove a course from the wishlist",
		Tags:        []string{"Wishlist"},
	}, func(ctx context.Context, input *RemoveWishlistItemInput) (*RemoveWishlistItemOutput, error) {
		if err := svc.Wishlist.Remove(ctx, input.ID); err != nil {
			return nil, toHumaError(err)
		}
		return &RemoveWishlistItemOutput{Body: svc.wishlistState(ctx)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "clear-wishlist",
		Method:      http.MethodDelete,
		Path:        "/api/v1/wishlist",
		Summary:     "Empty the wishlist",
		Tags:        []string{"Wishlist"},
	}, func(ctx context.Context, _ *struct{}) (*ClearWishlistOutput, error) {
		if err := svc.Wishlist.Clear(ctx); err != nil {
			return nil, toHumaError(err)
		}
		return &ClearWishlistOutput{Body: svc.wishlistState(ctx)}, nil
	})
}

func registerTenantAuth(api huma.API, svc Services) {
	huma.Register(api, huma.Operation{
		OperationID: "tenant-login",
		Method:      http.MethodPost,
		Path:        "/api/v1/tenants/{slug}/login",
		Summary:     "Log into a tenant's LMS",
		Tags:        []string{"Tenant Auth"},
	}, func(ctx context.Context, input *TenantLoginInput) (*TenantLoginOutput, error) {
		sess, err := svc.TenantAuth.Login(ctx, input.Slug, input.Body.Email, input.Body.Password, domain.Role(input.Body.Role))
		if err != nil {
			return nil, toHumaError(err)
		}
		out := &TenantLoginOutput{}
		out.Body.User = sess.User
		out.Body.TenantSlug = sess.TenantSlug
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "tenant-session",
		Method:      http.MethodGet,
		Path:        "/api/v1/tenants/{slug}/session",
		Summary:     "Get the tenant session state",
		Tags:        []string{"Tenant Auth"},
	}, func(ctx context.Context, input *TenantSessionInput) (*TenantSessionOutput, error) {
		out := &TenantSessionOutput{}
		out.Body.Role = string(domain.RoleGuest)
		if sess, ok := svc.TenantAuth.Session(ctx, input.Slug); ok {
			out.Body.Authenticated = true
			out.Body.Role = string(sess.User.Role)
			out.Body.User = &sess.User
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "tenant-logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/tenants/{slug}/logout",
		Summary:     "Log out of a tenant's LMS",
		Tags:        []string{"Tenant Auth"},
	}, func(ctx context.Context, input *TenantLogoutInput) (*TenantLogoutOutput, error) {
		svc.TenantAuth.Logout(ctx, input.Slug)
		return &TenantLogoutOutput{}, nil
	})
}

func registerDirectory(api huma.API, svc Services) {
	huma.Register(api, huma.Operation{
		OperationID: "create-tenant",
		Method:      http.MethodPost,
		Path:        "/api/v1/tenants",
		Summary:     "Register a new tenant",
		Tags:        []string{"Directory"},
	}, func(ctx context.Context, input *CreateTenantInput) (*CreateTenantOutput, error) {
		if err := svc.requireAdmin(ctx, "/api/v1/tenants"); err != nil {
			return nil, err
		}
		tenant, err := svc.Directory.CreateTenant(ctx, input.Body.Name, input.Body.Slug)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreateTenantOutput{Body: toTenantResponse(tenant)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-tenants",
		Method:      http.MethodGet,
		Path:        "/api/v1/tenants",
		Summary:     "List registered tenants",
		Tags:        []string{"Directory"},
	}, func(ctx context.Context, _ *struct{}) (*ListTenantsOutput, error) {
		tenants, err := svc.Directory.ListTenants(ctx)
		if err != nil {
			return nil, toHumaError(err)
		}
		resp := make([]TenantResponse, len(tenants))
		for i, t := range tenants {
			resp[i] = toTenantResponse(t)
		}
		return &ListTenantsOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-tenant",
		Method:      http.MethodGet,
		Path:        "/api/v1/tenants/{slug}",
		Summary:     "Get a tenant by slug",
		Tags:        []string{"Directory"},
	}, func(ctx context.Context, input *GetTenantInput) (*GetTenantOutput, error) {
		tenant, err := svc.Directory.GetTenant(ctx, input.Slug)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetTenantOutput{Body: toTenantResponse(tenant)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-account",
		Method:      http.MethodPost,
		Path:        "/api/v1/accounts",
		Summary:     "Register an account",
		Tags:        []string{"Directory"},
	}, func(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
		if err := svc.requireAdmin(ctx, "/api/v1/accounts"); err != nil {
			return nil, err
		}
		account, err := svc.Directory.CreateAccount(ctx,
			input.Body.Email, input.Body.Name,
			domain.ParseRole(input.Body.Role),
			input.Body.Password, input.Body.OwnsTenant,
		)
		if err != nil {
			return nil, toHumaError(err)
		}
		out := &CreateAccountOutput{}
		out.Body.ID = account.ID
		out.Body.Email = account.Email
		out.Body.Name = account.Name
		out.Body.Role = string(account.Role)
		out.Body.OwnsTenant = account.OwnsTenant
		return out, nil
	})
}

// requireAdmin evaluates the admin guard for the given route and returns a
// 403 carrying the redirect target when denied.
func (svc Services) requireAdmin(ctx context.Context, from string) error {
	if svc.AdminGuard == nil {
		return nil
	}
	d := svc.AdminGuard.Evaluate(ctx, from)
	if d.Allowed {
		return nil
	}
	return huma.Error403Forbidden("admin role required, redirect to " + d.RedirectTo)
}

// toHumaError translates domain errors to Huma HTTP errors.
func toHumaError(err error) error {
	if errors.Is(err, domain.ErrTenantNotFound) {
		return huma.Error404NotFound("tenant not found")
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return huma.Error401Unauthorized("invalid credentials")
	}

	var slugErr *domain.SlugConflictError
	if errors.As(err, &slugErr) {
		return huma.Error409Conflict(slugErr.Error())
	}

	var emailErr *domain.EmailConflictError
	if errors.As(err, &emailErr) {
		return huma.Error409Conflict(emailErr.Error())
	}

	var trErr *domain.TransitionError
	if errors.As(err, &trErr) {
		return huma.Error422UnprocessableEntity(trErr.Error())
	}

	return huma.Error500InternalServerError("internal server error")
}
