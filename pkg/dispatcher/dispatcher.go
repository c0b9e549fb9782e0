// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package dispatcher implements the HTTP-facing Dispatcher of spec
// section 4.4: it composes StateManager, RunResolver, HosterRegistry
// and the repository sink behind the endpoints listed in spec
// section 6.
package dispatcher

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/repofleet/coordinator/pkg/block"
	"github.com/repofleet/coordinator/pkg/errors"
	"github.com/repofleet/coordinator/pkg/hoster"
	"github.com/repofleet/coordinator/pkg/logger/log"
	"github.com/repofleet/coordinator/pkg/model/rest"
	"github.com/repofleet/coordinator/pkg/reposink"
	"github.com/repofleet/coordinator/pkg/resolver"
	"github.com/repofleet/coordinator/pkg/state"
)

// crawlerDescriptor is the "crawler" sub-object of the block JSON
// shape in spec section 6.
type crawlerDescriptor struct {
	Type   string `json:"type"`
	ApiUrl string `json:"api_url"`
}

// IssuedBlock is the block JSON shape of spec section 6:
// {uid, run_uid, from_id, to_id, ids, attempts_at, status, crawler, callback_url}.
type IssuedBlock struct {
	*block.Block
	Crawler     crawlerDescriptor `json:"crawler"`
	CallbackUrl string            `json:"callback_url"`
}

// Dispatcher is stateless: every field is a collaborator injected at
// construction time (spec section 4.4: "the dispatcher is stateless;
// it composes StateManager + RunResolver + HosterRegistry + the
// repository sink").
type Dispatcher struct {
	Hosters         hoster.Registry
	State           *state.Manager
	Resolver        *resolver.Service
	Sink            reposink.Sink
	BaseURL         string
	StaleRunSeconds int64
	Now             func() int64
}

// RegisterRoutes mounts the Dispatcher's endpoints (spec section 6)
// under group. Matches pkg/router.GroupRegister.
func (d *Dispatcher) RegisterRoutes(group *gin.RouterGroup) error {
	group.GET("/hosters", d.ListHosters)
	group.POST("/hosters", d.RegisterHoster)
	group.GET("/hosters/:hid/state", d.GetState)
	group.GET("/hosters/:hid/block", d.GetBlock)
	group.GET("/hosters/:hid/loadbalanced_block", d.LoadBalancedBlock)
	// A single wildcard route covers both PUT /hosters/<hid>/ (bulk
	// ingest, empty wildcard) and PUT /hosters/<hid>/<block_uid>
	// (callback): gin cannot register both a static and a wildcard
	// child of the same parent cleanly, and the spec's optional
	// trailing block_uid maps naturally onto a wildcard parameter.
	group.PUT("/hosters/:hid/*blockUid", d.Callback)
	return nil
}

func (d *Dispatcher) ListHosters(c *gin.Context) {
	hosters, err := d.Hosters.List(c)
	if err != nil {
		_ = c.Error(errors.WrapError(err, "failed to list hosters", errors.CodeStoreError))
		return
	}
	c.JSON(http.StatusOK, rest.SuccessResp(c, hosters))
}

type registerHosterRequest struct {
	Type           string            `json:"type" binding:"required"`
	LandingpageUrl string            `json:"landingpage_url"`
	ApiUrl         string            `json:"api_url"`
	Config         map[string]string `json:"config"`
}

func (d *Dispatcher) RegisterHoster(c *gin.Context) {
	var req registerHosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.WrapError(err, "invalid hoster registration payload", errors.RequestParameterInvalid))
		return
	}
	h := &hoster.Hoster{
		Type:           req.Type,
		LandingpageUrl: req.LandingpageUrl,
		ApiUrl:         req.ApiUrl,
		Config:         req.Config,
	}
	if err := d.Hosters.Register(c, h); err != nil {
		_ = c.Error(errors.WrapError(err, "failed to register hoster", errors.CodeStoreError))
		return
	}
	c.JSON(http.StatusOK, rest.SuccessResp(c, h))
}

// lookupHoster returns the hoster for hid, writing the literal 404
// spec.md section 7 requires for an unknown hoster id. This bypasses
// the generic HandleErrors middleware (which always answers 200, per
// the teacher's convention) because this one status code is part of
// the wire contract crawler workers depend on.
func (d *Dispatcher) lookupHoster(c *gin.Context, hid string) (*hoster.Hoster, bool) {
	h, ok, err := d.Hosters.Get(c, hid)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, rest.ErrorResp(c, errors.CodeStoreError, err.Error(), nil))
		return nil, false
	}
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, rest.ErrorResp(c, errors.UnknownHoster, "unknown hoster", nil))
		return nil, false
	}
	return h, true
}

func (d *Dispatcher) GetState(c *gin.Context) {
	hid := c.Param("hid")
	if _, ok := d.lookupHoster(c, hid); !ok {
		return
	}
	sd, err := d.State.GetStateDict(c, hid)
	if err != nil {
		_ = c.Error(errors.WrapError(err, "failed to read hoster state", errors.CodeStoreError))
		return
	}
	blocks, err := d.State.ListBlocks(c, hid)
	if err != nil {
		_ = c.Error(errors.WrapError(err, "failed to list blocks", errors.CodeStoreError))
		return
	}
	c.JSON(http.StatusOK, rest.SuccessResp(c, gin.H{
		"state":  sd,
		"blocks": blocks,
	}))
}

func (d *Dispatcher) issueBlock(c *gin.Context, h *hoster.Hoster) (*IssuedBlock, error) {
	b, found, err := d.State.GetTimedOutBlock(c, h.Id)
	if err != nil {
		return nil, err
	}
	if !found {
		b, err = d.State.GetNextBlock(c, h.Id)
		if err != nil {
			return nil, err
		}
	}
	return &IssuedBlock{
		Block:       b,
		Crawler:     crawlerDescriptor{Type: h.Type, ApiUrl: h.ApiUrl},
		CallbackUrl: fmt.Sprintf("%s/v1/hosters/%s/%s", d.BaseURL, h.Id, b.Uid),
	}, nil
}

func (d *Dispatcher) GetBlock(c *gin.Context) {
	hid := c.Param("hid")
	h, ok := d.lookupHoster(c, hid)
	if !ok {
		return
	}
	issued, err := d.issueBlock(c, h)
	if err != nil {
		_ = c.Error(errors.WrapError(err, "failed to issue block", errors.CodeStoreError))
		return
	}
	c.JSON(http.StatusOK, rest.SuccessResp(c, issued))
}

// LoadBalancedBlock implements GET /hosters/<type>/loadbalanced_block
// (spec section 4.4): issues a block for the stalest crawlable hoster
// of the given type, or {} with HTTP 200 if none is due.
func (d *Dispatcher) LoadBalancedBlock(c *gin.Context) {
	hosterType := c.Param("hid")
	hosters, err := d.Hosters.ListByType(c, hosterType)
	if err != nil {
		_ = c.Error(errors.WrapError(err, "failed to list hosters by type", errors.CodeStoreError))
		return
	}

	now := d.Now()
	var stalest *hoster.Hoster
	var stalestCreatedTs int64
	for _, h := range hosters {
		sd, err := d.State.GetStateDict(c, h.Id)
		if err != nil {
			_ = c.Error(errors.WrapError(err, "failed to read hoster state", errors.CodeStoreError))
			return
		}
		crawlable := !sd.RunIsFinished || (now-sd.RunCreatedTs) > d.StaleRunSeconds
		if !crawlable {
			continue
		}
		if stalest == nil || sd.RunCreatedTs < stalestCreatedTs {
			stalest = h
			stalestCreatedTs = sd.RunCreatedTs
		}
	}

	if stalest == nil {
		c.JSON(http.StatusOK, rest.SuccessResp(c, gin.H{}))
		return
	}

	issued, err := d.issueBlock(c, stalest)
	if err != nil {
		_ = c.Error(errors.WrapError(err, "failed to issue block", errors.CodeStoreError))
		return
	}
	c.JSON(http.StatusOK, rest.SuccessResp(c, issued))
}

// Callback implements both PUT /hosters/<hid>/ (bulk ingest, no
// block_uid) and PUT /hosters/<hid>/<block_uid> (callback) from spec
// section 4.4 and section 6.
func (d *Dispatcher) Callback(c *gin.Context) {
	hid := c.Param("hid")
	blockUid := c.Param("blockUid")
	if len(blockUid) > 0 && blockUid[0] == '/' {
		blockUid = blockUid[1:]
	}

	h, ok := d.lookupHoster(c, hid)
	if !ok {
		return
	}

	var repos []reposink.Repo
	if err := c.ShouldBindJSON(&repos); err != nil {
		_ = c.Error(errors.WrapError(err, "invalid repo payload", errors.RequestParameterInvalid))
		return
	}
	for i := range repos {
		repos[i].HosterId = h.Id
	}

	if err := d.Sink.Put(c, repos); err != nil {
		_ = c.Error(errors.WrapError(err, "failed to persist repos", errors.CodeStoreError))
		return
	}

	if blockUid == "" {
		c.JSON(http.StatusOK, rest.SuccessResp(c, gin.H{"ingested": len(repos)}))
		return
	}

	detector, ok := resolver.ForType(h.Type)
	if !ok {
		log.GlobalLogger().WithContext(c).Errorf("unknown repo type %q for hoster %s", h.Type, h.Id)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"status": "error", "msg": "unknown repo type"})
		return
	}

	finished, err := d.Resolver.Resolve(c, hid, detector, blockUid, len(repos))
	if err != nil {
		_ = c.Error(errors.WrapError(err, "failed to resolve block", errors.CodeStoreError))
		return
	}
	if finished == nil {
		log.GlobalLogger().WithContext(c).Infof("stale callback for hoster %s block %s, acknowledged", hid, blockUid)
		c.JSON(http.StatusOK, rest.SuccessResp(c, gin.H{"status": "stale"}))
		return
	}
	c.JSON(http.StatusOK, rest.SuccessResp(c, gin.H{"run_is_finished": *finished}))
}
