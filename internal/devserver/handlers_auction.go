package devserver

import (
	"net/http"

	"auctionauth/internal/domain/types"
)

func (srv *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	// Re-read so credits from concurrent requests are visible.
	u, _ := srv.db.user(currentUser(r).id)
	srv.writeSigned(w, r, types.Balance{Balance: u.balance})
}

func (srv *Server) handleAddBalance(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	var req types.Deposit
	if apiErr := srv.readEnvelope(r, u, &req); apiErr != nil {
		srv.writeError(w, r, apiErr)
		return
	}
	if !checkAmount(req.Amount) {
		srv.writeError(w, r, errBadAmount)
		return
	}
	srv.db.credit(u.id, req.Amount)
	srv.writeSigned(w, r, types.StatusMessage{Status: "OK", Message: "Amount credited"})
}

func (srv *Server) handleCreateAuction(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	var req types.NewAuction
	if apiErr := srv.readEnvelope(r, u, &req); apiErr != nil {
		srv.writeError(w, r, apiErr)
		return
	}
	now := srv.now()
	switch {
	case !checkTitle(req.Title):
		srv.writeError(w, r, errBadTitle)
		return
	case !checkDescription(req.Description):
		srv.writeError(w, r, errBadDescription)
		return
	case !checkPrice(req.Price):
		srv.writeError(w, r, errBadPrice)
		return
	case !checkEnd(req.Timestamp, now):
		srv.writeError(w, r, errBadTimestamp)
		return
	}
	a := srv.db.addAuction(types.Auction{
		SellerID:    u.id,
		Title:       req.Title,
		Description: req.Description,
		BasePrice:   req.Price,
		CreatedAt:   now.Unix(),
		EndAt:       req.Timestamp,
		Status:      StatusActive,
	})
	srv.log.Info("auction created", "id", a.ID, "seller", u.id)
	srv.writeSigned(w, r, a)
}

func (srv *Server) handleListAuctions(w http.ResponseWriter, r *http.Request) {
	srv.writeSigned(w, r, srv.db.listAuctions())
}

func (srv *Server) handleGetAuction(w http.ResponseWriter, r *http.Request) {
	var req types.AuctionRef
	if apiErr := srv.readEnvelope(r, currentUser(r), &req); apiErr != nil {
		srv.writeError(w, r, apiErr)
		return
	}
	a, ok := srv.db.auction(req.AuctionID)
	if !ok {
		srv.writeError(w, r, errNoAuction)
		return
	}
	srv.writeSigned(w, r, a)
}

func (srv *Server) handleDeleteAuction(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	var req types.AuctionRef
	if apiErr := srv.readEnvelope(r, u, &req); apiErr != nil {
		srv.writeError(w, r, apiErr)
		return
	}
	a, ok := srv.db.auction(req.AuctionID)
	if !ok {
		srv.writeError(w, r, errNoAuction)
		return
	}
	if a.SellerID != u.id {
		srv.writeError(w, r, errNotSeller)
		return
	}
	if !srv.db.deleteAuction(a.ID) {
		srv.writeError(w, r, errNoAuction)
		return
	}
	writeJSON(w, http.StatusOK, types.Deletion{Status: "OK", Deleted: true, AuctionID: a.ID})
}

func (srv *Server) handleBid(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	var req types.NewBid
	if apiErr := srv.readEnvelope(r, u, &req); apiErr != nil {
		srv.writeError(w, r, apiErr)
		return
	}
	a, ok := srv.db.auction(req.AuctionID)
	if !ok {
		srv.writeError(w, r, errNoAuction)
		return
	}
	now := srv.now()
	if a.EndAt <= now.Unix() {
		srv.writeError(w, r, errAuctionOver)
		return
	}
	if current, _ := srv.db.user(u.id); current.balance < req.Price {
		srv.writeError(w, r, errNoCredit)
		return
	}
	b := srv.db.addBid(types.Bid{
		AuctionID: a.ID,
		UserID:    u.id,
		CreatedAt: now.Unix(),
		Price:     req.Price,
	})
	srv.writeSigned(w, r, b)
}

func (srv *Server) handleCancelBid(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	var req types.BidRef
	if apiErr := srv.readEnvelope(r, u, &req); apiErr != nil {
		srv.writeError(w, r, apiErr)
		return
	}
	b, ok := srv.db.bid(req.BidID)
	if !ok {
		srv.writeError(w, r, errNoBid)
		return
	}
	if b.UserID != u.id {
		srv.writeError(w, r, errNotBidder)
		return
	}
	if srv.now().Unix()-b.CreatedAt > int64(cancelWindow.Seconds()) {
		srv.writeError(w, r, errCancelTooLate)
		return
	}
	if last, ok := srv.db.lastBid(b.AuctionID); !ok || last.ID != b.ID {
		srv.writeError(w, r, errNotLatestBid)
		return
	}
	if !srv.db.deleteBid(b.ID) {
		srv.writeError(w, r, errNoBid)
		return
	}
	srv.writeSigned(w, r, types.StatusMessage{Status: "CNBID", Message: "OK"})
}

func (srv *Server) handleUpdatePrice(w http.ResponseWriter, r *http.Request) {
	var req types.AuctionRef
	if apiErr := srv.readEnvelope(r, currentUser(r), &req); apiErr != nil {
		srv.writeError(w, r, apiErr)
		return
	}
	if _, ok := srv.db.auction(req.AuctionID); !ok {
		srv.writeError(w, r, errNoAuction)
		return
	}
	srv.writeSigned(w, r, types.PriceUpdate{
		AuctionID:    req.AuctionID,
		UpdatedPrice: srv.db.highest(req.AuctionID),
	})
}
