package api

import (
	"net/http"
	"strconv"

	"cashflow-mcp/internal/cashflow"
	"cashflow-mcp/internal/catalog"
	"cashflow-mcp/internal/dataset"
	"cashflow-mcp/internal/forecast"
	"cashflow-mcp/internal/logging"
	"cashflow-mcp/internal/stats"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
)

const (
	maxBodyBytes = 8 << 20
	maxHorizon   = 365
	maxSteps     = 1000
)

type histogramResponse struct {
	EntityID string               `json:"entity_id"`
	Column   string               `json:"column"`
	Points   int                  `json:"points"`
	Bins     []stats.HistogramBin `json:"bins"`
}

type curveResponse struct {
	EntityID string                `json:"entity_id"`
	Column   string                `json:"column"`
	Mean     float64               `json:"mean"`
	StdDev   float64               `json:"std_dev"`
	Curve    []stats.GaussianPoint `json:"curve"`
}

// StatisticsRequest is the body of POST /statistics.
type StatisticsRequest struct {
	Series cashflow.Series `json:"series"`
}

// Routes returns every endpoint served over svc.
func Routes(svc *dataset.Service) []Route {
	return []Route{
		{Path: "/healthz", Method: http.MethodGet, Handler: Healthcheck()},
		{Path: "/entities", Method: http.MethodGet, Handler: ListEntities(svc)},
		{Path: "/entities/:id/dataset", Method: http.MethodGet, Handler: GetDataset(svc)},
		{Path: "/entities/:id/dataset", Method: http.MethodDelete, Handler: ForgetDataset(svc)},
		{Path: "/entities/:id/statistics", Method: http.MethodGet, Handler: GetStatistics(svc)},
		{Path: "/entities/:id/histogram", Method: http.MethodGet, Handler: GetHistogram(svc)},
		{Path: "/entities/:id/gaussian", Method: http.MethodGet, Handler: GetGaussian(svc)},
		{Path: "/entities/:id/forecast", Method: http.MethodGet, Handler: GetForecast(svc)},
		{Path: "/entities/:id/balance-sheet", Method: http.MethodGet, Handler: GetBalanceSheet(svc)},
		{Path: "/entities/:id/variations", Method: http.MethodGet, Handler: GetVariations(svc)},
		{Path: "/statistics", Method: http.MethodPost, Handler: PostStatistics()},
	}
}

func Healthcheck() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func ListEntities(svc *dataset.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, svc.Catalog().List())
	}
}

func GetDataset(svc *dataset.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseWindow(r)
		if err != nil {
			WriteError(w, ErrInvalidFormat, err.Error())
			return
		}
		ds, err := svc.Dataset(entityID(r), q.seed)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, ds)
	}
}

// ForgetDataset drops the cached histories of an entity so the next read regenerates them.
func ForgetDataset(svc *dataset.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.Forget(entityID(r))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"removed": n})
	}
}

func GetStatistics(svc *dataset.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseWindow(r)
		if err != nil {
			WriteError(w, ErrInvalidFormat, err.Error())
			return
		}
		st, err := svc.Statistics(entityID(r), q.seed, q.year, q.quarter)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

func GetHistogram(svc *dataset.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseWindow(r)
		if err != nil {
			WriteError(w, ErrInvalidFormat, err.Error())
			return
		}
		column, values, err := windowColumn(svc, r, q)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		bins := stats.CalculateHistogram(values)
		if bins == nil {
			bins = []stats.HistogramBin{}
		}
		writeJSON(w, http.StatusOK, histogramResponse{
			EntityID: entityID(r),
			Column:   column,
			Points:   len(values),
			Bins:     bins,
		})
	}
}

func GetGaussian(svc *dataset.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseWindow(r)
		if err != nil {
			WriteError(w, ErrInvalidFormat, err.Error())
			return
		}
		steps, err := queryInt(r, "steps", stats.DefaultCurveSteps)
		if err != nil || steps < 1 || steps > maxSteps {
			WriteError(w, ErrInvalidRequest, "steps must be an integer between 1 and 1000")
			return
		}
		column, values, err := windowColumn(svc, r, q)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		curve := stats.GaussianCurve(values, steps)
		if curve == nil {
			curve = []stats.GaussianPoint{}
		}
		mean := stats.Mean(values)
		writeJSON(w, http.StatusOK, curveResponse{
			EntityID: entityID(r),
			Column:   column,
			Mean:     mean,
			StdDev:   stats.StdDev(values, mean),
			Curve:    curve,
		})
	}
}

func GetForecast(svc *dataset.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseWindow(r)
		if err != nil {
			WriteError(w, ErrInvalidFormat, err.Error())
			return
		}
		horizon, err := queryInt(r, "horizon", forecast.DefaultHorizon)
		if err != nil || horizon < 1 || horizon > maxHorizon {
			WriteError(w, ErrInvalidRequest, "horizon must be an integer between 1 and 365")
			return
		}
		ds, err := svc.Dataset(entityID(r), q.seed)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, forecast.Project(ds.Series, horizon))
	}
}

func GetBalanceSheet(svc *dataset.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sheets, err := svc.BalanceSheets(entityID(r))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, sheets)
	}
}

func GetVariations(svc *dataset.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseWindow(r)
		if err != nil {
			WriteError(w, ErrInvalidFormat, err.Error())
			return
		}
		v, err := svc.Variations(entityID(r), q.seed, q.year, q.quarter)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

// PostStatistics describes a caller-supplied series. Dates are optional.
func PostStatistics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StatisticsRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			WriteError(w, ErrInvalidFormat, "body must be a JSON object with a series array")
			return
		}
		writeJSON(w, http.StatusOK, dataset.ComputeStatistics(req.Series))
	}
}

type window struct {
	seed    int64
	year    int
	quarter int
}

func parseWindow(r *http.Request) (window, error) {
	var q window
	var err error
	if raw := r.URL.Query().Get("seed"); raw != "" {
		if q.seed, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return q, errors.Errorf("seed %q is not an integer", raw)
		}
	}
	if q.year, err = queryInt(r, "year", 0); err != nil || q.year < 0 {
		return q, errors.New("year must be a non-negative integer")
	}
	if q.quarter, err = queryInt(r, "quarter", 0); err != nil || q.quarter < 0 || q.quarter > 4 {
		return q, errors.New("quarter must be an integer between 0 and 4")
	}
	return q, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func entityID(r *http.Request) string {
	return httprouter.ParamsFromContext(r.Context()).ByName("id")
}

func windowColumn(svc *dataset.Service, r *http.Request, q window) (string, []float64, error) {
	series, err := svc.Series(entityID(r), q.seed, q.year, q.quarter)
	if err != nil {
		return "", nil, err
	}
	return dataset.Column(series, r.URL.Query().Get("column"))
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrUnknownEntity):
		WriteError(w, ErrUnknownEntity, err.Error())
	case errors.Is(err, dataset.ErrUnknownColumn):
		WriteError(w, ErrInvalidRequest, err.Error())
	default:
		logging.FromContext(r.Context()).Error().Err(err).Msg("Request failed")
		WriteError(w, ErrInternalServer, "internal server error")
	}
}
