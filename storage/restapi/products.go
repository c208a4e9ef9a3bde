package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/trezcool/lotus/core/product"
)

// DefaultBaseURL is the products collection of the remote catalog.
const DefaultBaseURL = "https://a4d47a2e-ca39-4067-87ff-f1db77bb1a56.mock.pstmn.io/products"

var jsonHeaders = map[string]string{
	"Accept":       "application/json",
	"Content-Type": "application/json",
}

// ProductClient talks to the remote product service.
// Calls are sent once: there is no retry, and no timeout besides the one carried by ctx.
type ProductClient struct {
	baseURL string
	rest    *rest.Client
}

var _ product.Client = (*ProductClient)(nil)

// NewProductClient returns a client for the products collection at baseURL (DefaultBaseURL if empty).
// httpClient is optional.
func NewProductClient(baseURL string, httpClient ...*http.Client) *ProductClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	hc := &http.Client{}
	if len(httpClient) > 0 && httpClient[0] != nil {
		hc = httpClient[0]
	}
	return &ProductClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		rest:    &rest.Client{HTTPClient: hc},
	}
}

func (c *ProductClient) BaseURL() string { return c.baseURL }

func (c *ProductClient) List(ctx context.Context, limit int) ([]product.Product, error) {
	req := rest.Request{
		Method:      rest.Get,
		BaseURL:     c.baseURL,
		Headers:     jsonHeaders,
		QueryParams: map[string]string{"limit": strconv.Itoa(limit)},
	}
	res, err := c.rest.SendWithContext(ctx, req)
	if err != nil {
		return nil, &product.FetchError{Err: errors.Wrap(err, "sending request")}
	}
	if !isSuccess(res.StatusCode) {
		return nil, &product.FetchError{StatusCode: res.StatusCode}
	}

	var products []product.Product
	if err := json.Unmarshal([]byte(res.Body), &products); err != nil {
		return nil, &product.FetchError{StatusCode: res.StatusCode, Err: errors.Wrap(err, "decoding products")}
	}
	if products == nil {
		products = []product.Product{}
	}
	return products, nil
}

func (c *ProductClient) Create(ctx context.Context, cand product.Candidate) (product.Product, error) {
	body, err := json.Marshal(cand)
	if err != nil {
		return product.Product{}, &product.CreateError{Err: errors.Wrap(err, "encoding product")}
	}
	req := rest.Request{
		Method:  rest.Post,
		BaseURL: c.baseURL,
		Headers: jsonHeaders,
		Body:    body,
	}
	res, err := c.rest.SendWithContext(ctx, req)
	if err != nil {
		return product.Product{}, &product.CreateError{Err: errors.Wrap(err, "sending request")}
	}
	if !isSuccess(res.StatusCode) {
		return product.Product{}, &product.CreateError{StatusCode: res.StatusCode}
	}

	var created product.Product
	if err := json.Unmarshal([]byte(res.Body), &created); err != nil {
		return product.Product{}, &product.CreateError{StatusCode: res.StatusCode, Err: errors.Wrap(err, "decoding product")}
	}
	return created, nil
}

func (c *ProductClient) Update(ctx context.Context, id int, cand product.Candidate) (product.Product, error) {
	body, err := json.Marshal(cand)
	if err != nil {
		return product.Product{}, &product.UpdateError{ID: id, Err: errors.Wrap(err, "encoding product")}
	}
	req := rest.Request{
		Method:  rest.Put,
		BaseURL: c.itemURL(id),
		Headers: jsonHeaders,
		Body:    body,
	}
	res, err := c.rest.SendWithContext(ctx, req)
	if err != nil {
		return product.Product{}, &product.UpdateError{ID: id, Err: errors.Wrap(err, "sending request")}
	}
	if !isSuccess(res.StatusCode) {
		return product.Product{}, &product.UpdateError{ID: id, StatusCode: res.StatusCode}
	}

	var updated product.Product
	if err := json.Unmarshal([]byte(res.Body), &updated); err != nil {
		return product.Product{}, &product.UpdateError{ID: id, StatusCode: res.StatusCode, Err: errors.Wrap(err, "decoding product")}
	}
	return updated, nil
}

// Delete ignores the response body.
func (c *ProductClient) Delete(ctx context.Context, id int) error {
	req := rest.Request{
		Method:  rest.Delete,
		BaseURL: c.itemURL(id),
		Headers: map[string]string{"Accept": "application/json"},
	}
	res, err := c.rest.SendWithContext(ctx, req)
	if err != nil {
		return &product.DeleteError{ID: id, Err: errors.Wrap(err, "sending request")}
	}
	if !isSuccess(res.StatusCode) {
		return &product.DeleteError{ID: id, StatusCode: res.StatusCode}
	}
	return nil
}

func (c *ProductClient) itemURL(id int) string {
	return c.baseURL + "/" + strconv.Itoa(id)
}

func isSuccess(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
