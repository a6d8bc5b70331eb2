package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/couplefin/couple_finance_app/internal/core/services"
	"github.com/couplefin/couple_finance_app/internal/dto"
	"github.com/couplefin/couple_finance_app/internal/handlers"
	"github.com/couplefin/couple_finance_app/internal/platform/storage/memory"
	"github.com/couplefin/couple_finance_app/internal/repositories/docstore"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

// WalletHandlerTestSuite drives the HTTP façade end to end against the
// in-memory store.
type WalletHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (s *WalletHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	repos := docstore.NewRepositoryProvider(memory.New())
	container := services.NewServiceContainer(repos)

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, container)
}

func (s *WalletHandlerTestSuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *WalletHandlerTestSuite) createWallet(name string, balance float64) dto.WalletResponse {
	w := s.request(http.MethodPost, "/api/v1/wallets", gin.H{
		"name":           name,
		"type":           "conta_corrente",
		"initialBalance": balance,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp dto.WalletResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (s *WalletHandlerTestSuite) TestHealth() {
	w := s.request(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *WalletHandlerTestSuite) TestCreateAndGetWallet() {
	created := s.createWallet("Conta Corrente", 1000)
	s.Equal("Conta Corrente", created.Name)
	s.Equal("1000", created.CurrentBalance.String())

	w := s.request(http.MethodGet, "/api/v1/wallets/"+created.WalletID, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var fetched dto.WalletResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &fetched))
	s.Equal(created.WalletID, fetched.WalletID)
}

func (s *WalletHandlerTestSuite) TestCreateWalletRejectsUnknownType() {
	w := s.request(http.MethodPost, "/api/v1/wallets", gin.H{
		"name": "Inválida",
		"type": "bitcoin",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *WalletHandlerTestSuite) TestGetWalletNotFound() {
	w := s.request(http.MethodGet, "/api/v1/wallets/missing", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *WalletHandlerTestSuite) TestTransferBetweenWallets() {
	a := s.createWallet("Conta", 500)
	b := s.createWallet("Poupança", 0)

	w := s.request(http.MethodPost, "/api/v1/transfers", gin.H{
		"sourceID": a.WalletID,
		"destID":   b.WalletID,
		"value":    200,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var legs []dto.TransactionResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &legs))
	s.Len(legs, 2)

	balance := s.request(http.MethodGet, "/api/v1/wallets/balance", nil)
	s.Require().Equal(http.StatusOK, balance.Code)
	s.Contains(balance.Body.String(), "500", "transfers do not change the combined total")
}

func (s *WalletHandlerTestSuite) TestTransferSameWalletIsBadRequest() {
	a := s.createWallet("Conta", 500)
	w := s.request(http.MethodPost, "/api/v1/transfers", gin.H{
		"sourceID": a.WalletID,
		"destID":   a.WalletID,
		"value":    10,
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *WalletHandlerTestSuite) TestDeleteWallet() {
	created := s.createWallet("Temporária", 0)

	w := s.request(http.MethodDelete, "/api/v1/wallets/"+created.WalletID, nil)
	s.Equal(http.StatusNoContent, w.Code)

	w = s.request(http.MethodGet, fmt.Sprintf("/api/v1/wallets/%s", created.WalletID), nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func TestWalletHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(WalletHandlerTestSuite))
}
