package normative

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"mindhub-service/internal/app/config"
	"mindhub-service/internal/app/models"
	"mindhub-service/internal/pkg/clinimetrix"
	"mindhub-service/internal/pkg/constvars"
	"mindhub-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

// normativeClient looks up population reference statistics from the external
// normative-data service. A 404 maps to clinimetrix.ErrNormsNotFound; every
// other failure is returned as-is. Either way the engine's fallback path
// takes over, so callers of the engine never see these errors.
type normativeClient struct {
	BaseUrl    string
	HttpClient *http.Client
}

func NewNormativeClient(internalConfig *config.InternalConfig) clinimetrix.NormativeClient {
	return &normativeClient{
		BaseUrl: internalConfig.Normative.BaseUrl,
		HttpClient: &http.Client{
			Timeout: time.Second * time.Duration(internalConfig.Normative.TimeoutInSecond),
		},
	}
}

func (c *normativeClient) FindNorms(ctx context.Context, instrumentID string, demographics clinimetrix.Demographics) (*models.NormativeData, error) {
	endpoint := fmt.Sprintf("%s/%s", c.BaseUrl, url.PathEscape(instrumentID))

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, endpoint, nil)
	if err != nil {
		return nil, exceptions.ErrBuildRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	query := req.URL.Query()
	if demographics.AgeYears > 0 {
		query.Set("age_years", strconv.Itoa(demographics.AgeYears))
	}
	if demographics.Sex != "" {
		query.Set("sex", demographics.Sex)
	}
	if demographics.Education != "" {
		query.Set("education", demographics.Education)
	}
	req.URL.RawQuery = query.Encode()

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == constvars.StatusNotFound {
		return nil, clinimetrix.ErrNormsNotFound
	}
	if resp.StatusCode != constvars.StatusOK {
		return nil, exceptions.ErrSendRequest(fmt.Errorf("normative service responded with status %d", resp.StatusCode))
	}

	var norms models.NormativeData
	err = json.NewDecoder(resp.Body).Decode(&norms)
	if err != nil {
		return nil, exceptions.ErrDecodeResponse(err, "normative data")
	}
	return &norms, nil
}
