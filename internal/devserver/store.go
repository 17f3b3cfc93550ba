package devserver

import (
	"sort"
	"sync"

	"auctionauth/internal/domain/types"
)

// StatusActive is the status of every stored auction.
const StatusActive = "ACTIVE"

type user struct {
	id           int64
	username     string
	passwordHash []byte
	publicKey    types.KeyHalf
	balance      float64
}

// memory holds users, auctions and bids behind one lock.
type memory struct {
	mu sync.Mutex

	users    map[int64]*user
	byName   map[string]int64
	auctions map[int64]types.Auction
	bids     map[int64]types.Bid

	nextUser, nextAuction, nextBid int64
}

func newMemory() *memory {
	return &memory{
		users:    make(map[int64]*user),
		byName:   make(map[string]int64),
		auctions: make(map[int64]types.Auction),
		bids:     make(map[int64]types.Bid),
	}
}

// addUser stores u under a fresh id. It reports false if the name is taken.
func (m *memory) addUser(u user) (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.byName[u.username]; taken {
		return 0, false
	}
	m.nextUser++
	u.id = m.nextUser
	m.users[u.id] = &u
	m.byName[u.username] = u.id
	return u.id, true
}

func (m *memory) userByName(name string) (user, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byName[name]
	if !ok {
		return user{}, false
	}
	return *m.users[id], true
}

func (m *memory) user(id int64) (user, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return user{}, false
	}
	return *u, true
}

func (m *memory) credit(id int64, amount float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.balance += amount
	}
}

func (m *memory) addAuction(a types.Auction) types.Auction {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextAuction++
	a.ID = m.nextAuction
	m.auctions[a.ID] = a
	return a
}

func (m *memory) auction(id int64) (types.Auction, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.auctions[id]
	return a, ok
}

// listAuctions returns auctions ordered by id.
func (m *memory) listAuctions() []types.Auction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.Auction, 0, len(m.auctions))
	for _, a := range m.auctions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// deleteAuction drops an auction and its bids.
func (m *memory) deleteAuction(id int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.auctions[id]; !ok {
		return false
	}
	delete(m.auctions, id)
	for bid, b := range m.bids {
		if b.AuctionID == id {
			delete(m.bids, bid)
		}
	}
	return true
}

func (m *memory) addBid(b types.Bid) types.Bid {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextBid++
	b.ID = m.nextBid
	m.bids[b.ID] = b
	return b
}

func (m *memory) bid(id int64) (types.Bid, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bids[id]
	return b, ok
}

func (m *memory) deleteBid(id int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bids[id]; !ok {
		return false
	}
	delete(m.bids, id)
	return true
}

// lastBid is the most recent bid on an auction; ids break creation-time ties.
func (m *memory) lastBid(auctionID int64) (types.Bid, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var (
		last  types.Bid
		found bool
	)
	for _, b := range m.bids {
		if b.AuctionID != auctionID {
			continue
		}
		if !found || b.CreatedAt > last.CreatedAt || (b.CreatedAt == last.CreatedAt && b.ID > last.ID) {
			last, found = b, true
		}
	}
	return last, found
}

// highest is the top bid price on an auction, nil without bids.
func (m *memory) highest(auctionID int64) *float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var top *float64
	for _, b := range m.bids {
		if b.AuctionID != auctionID {
			continue
		}
		if top == nil || b.Price > *top {
			p := b.Price
			top = &p
		}
	}
	return top
}
