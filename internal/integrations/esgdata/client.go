package esgdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/greencred/lending-service/internal/apperrors"
	"github.com/greencred/lending-service/internal/models"
)

// RegistryClient fetches company ESG scores from an XML sustainability
// registry endpoint. Response shape:
//
//	<CompanyESG>
//	  <Company name="..."><Environmental>85</Environmental>...<Source>...</Source></Company>
//	</CompanyESG>
type RegistryClient struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewRegistryClient initializes a registry client with a bounded timeout.
func NewRegistryClient(registryURL string, log *logrus.Logger) *RegistryClient {
	return &RegistryClient{
		url: registryURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

func (c *RegistryClient) sendRequest(ctx context.Context, companyName string) ([]byte, error) {
	reqURL := fmt.Sprintf("%s?company=%s", c.url, url.QueryEscape(companyName))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &apperrors.NotFoundError{Resource: "company", Key: companyName}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("ESG registry XML response: %s", string(body))
	return body, nil
}

func (c *RegistryClient) parseXMLResponse(rawBody []byte) (models.CompanyESG, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return models.CompanyESG{}, fmt.Errorf("failed to parse XML: %v", err)
	}

	company := doc.FindElement("//CompanyESG/Company")
	if company == nil {
		return models.CompanyESG{}, fmt.Errorf("no company data found in XML")
	}

	var data models.CompanyESG
	fields := map[string]*float64{
		"Environmental": &data.Scores.Environmental,
		"Social":        &data.Scores.Social,
		"Governance":    &data.Scores.Governance,
		"Risk":          &data.Scores.Risk,
	}
	for name, dst := range fields {
		el := company.FindElement("./" + name)
		if el == nil {
			return models.CompanyESG{}, fmt.Errorf("%s element not found in XML", name)
		}
		v, err := strconv.ParseFloat(el.Text(), 64)
		if err != nil {
			return models.CompanyESG{}, fmt.Errorf("failed to parse %s score: %v", name, err)
		}
		*dst = v
	}
	if src := company.FindElement("./Source"); src != nil {
		data.Source = src.Text()
	} else {
		data.Source = "ESG Registry"
	}
	return data, nil
}

// Lookup queries the registry for the company's ESG scores.
func (c *RegistryClient) Lookup(ctx context.Context, companyName string) (models.CompanyESG, error) {
	body, err := c.sendRequest(ctx, companyName)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return models.CompanyESG{}, err
		}
		return models.CompanyESG{}, &apperrors.UpstreamError{Service: "esg-registry", Err: err}
	}

	data, err := c.parseXMLResponse(body)
	if err != nil {
		return models.CompanyESG{}, &apperrors.UpstreamError{Service: "esg-registry", Err: err}
	}

	c.log.Infof("Retrieved ESG registry data for %s (source: %s)", companyName, data.Source)
	return data, nil
}
