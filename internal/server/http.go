package server

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"strconv"

	"github.com/gaoyong06/go-pkg/health"
	"github.com/gaoyong06/go-pkg/middleware/app_id"
	"github.com/gaoyong06/go-pkg/middleware/i18n"

	"github.com/kerry-png/clubstand-platform-sub000/internal/conf"
	"github.com/kerry-png/clubstand-platform-sub000/internal/service"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
)

// NewHTTPServer new an HTTP server.
func NewHTTPServer(c *conf.Bootstrap, svc *service.MembershipService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			// 添加 i18n 中间件
			i18n.Middleware(),
			// 从 Header 提取俱乐部(租户)ID
			app_id.Middleware(),
		),
		http.ErrorEncoder(customErrorEncoder),
	}
	if c.Server.Http.Addr != "" {
		opts = append(opts, http.Address(c.Server.Http.Addr))
	}
	srv := http.NewServer(opts...)

	registerRoutes(srv, svc)

	// 注册健康检查端点
	srv.Route("/").GET("/health", func(ctx http.Context) error {
		return ctx.Result(200, health.NewResponse("membership-service"))
	})

	return srv
}

func registerRoutes(srv *http.Server, svc *service.MembershipService) {
	r := srv.Route("/v1")

	r.GET("/households/{household_id}/pricing", func(ctx http.Context) error {
		householdID, err := householdIDVar(ctx)
		if err != nil {
			return err
		}
		seasonYear, _ := strconv.Atoi(ctx.Query().Get("season_year"))
		req := &service.CalculatePricingRequest{HouseholdID: householdID, SeasonYear: seasonYear}
		h := ctx.Middleware(func(c context.Context, in interface{}) (interface{}, error) {
			return svc.CalculatePricing(c, in.(*service.CalculatePricingRequest))
		})
		out, err := h(ctx, req)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	r.POST("/households/{household_id}/reconcile", func(ctx http.Context) error {
		householdID, err := householdIDVar(ctx)
		if err != nil {
			return err
		}
		var req service.ReconcileRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		req.HouseholdID = householdID
		h := ctx.Middleware(func(c context.Context, in interface{}) (interface{}, error) {
			return svc.Reconcile(c, in.(*service.ReconcileRequest))
		})
		out, err := h(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	r.GET("/households/{household_id}/subscriptions", func(ctx http.Context) error {
		householdID, err := householdIDVar(ctx)
		if err != nil {
			return err
		}
		req := &service.ListSubscriptionsRequest{HouseholdID: householdID}
		h := ctx.Middleware(func(c context.Context, in interface{}) (interface{}, error) {
			return svc.ListSubscriptions(c, in.(*service.ListSubscriptionsRequest))
		})
		out, err := h(ctx, req)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	r.POST("/households/{household_id}/checkout", func(ctx http.Context) error {
		householdID, err := householdIDVar(ctx)
		if err != nil {
			return err
		}
		var req service.CreateCheckoutRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		req.HouseholdID = householdID
		h := ctx.Middleware(func(c context.Context, in interface{}) (interface{}, error) {
			return svc.CreateCheckout(c, in.(*service.CreateCheckoutRequest))
		})
		out, err := h(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	r.POST("/payments/notify", func(ctx http.Context) error {
		var req service.PaymentNotifyRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		h := ctx.Middleware(func(c context.Context, in interface{}) (interface{}, error) {
			return svc.HandlePaymentNotify(c, in.(*service.PaymentNotifyRequest))
		})
		out, err := h(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	r.GET("/pricing-config", func(ctx http.Context) error {
		req := &service.GetPricingConfigRequest{SeasonType: ctx.Query().Get("season_type")}
		h := ctx.Middleware(func(c context.Context, in interface{}) (interface{}, error) {
			return svc.GetPricingConfig(c, in.(*service.GetPricingConfigRequest))
		})
		out, err := h(ctx, req)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	r.PUT("/pricing-config", func(ctx http.Context) error {
		var req service.SavePricingConfigRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		h := ctx.Middleware(func(c context.Context, in interface{}) (interface{}, error) {
			return svc.SavePricingConfig(c, in.(*service.SavePricingConfigRequest))
		})
		out, err := h(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	r.GET("/pricing-rules", func(ctx http.Context) error {
		h := ctx.Middleware(func(c context.Context, in interface{}) (interface{}, error) {
			return svc.ListPricingRules(c, in.(*service.ListPricingRulesRequest))
		})
		out, err := h(ctx, &service.ListPricingRulesRequest{})
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	r.POST("/pricing-rules", func(ctx http.Context) error {
		var req service.PricingRuleRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		h := ctx.Middleware(func(c context.Context, in interface{}) (interface{}, error) {
			return svc.CreatePricingRule(c, in.(*service.PricingRuleRequest))
		})
		out, err := h(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	r.PUT("/pricing-rules/{rule_id}", func(ctx http.Context) error {
		ruleID, err := strconv.ParseUint(ctx.Vars().Get("rule_id"), 10, 64)
		if err != nil {
			return kerrors.BadRequest("INVALID_ARGUMENT", "rule_id must be a positive integer")
		}
		var req service.PricingRuleRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		h := ctx.Middleware(func(c context.Context, in interface{}) (interface{}, error) {
			return svc.UpdatePricingRule(c, ruleID, in.(*service.PricingRuleRequest))
		})
		out, err := h(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	r.DELETE("/pricing-rules/{rule_id}", func(ctx http.Context) error {
		ruleID, err := strconv.ParseUint(ctx.Vars().Get("rule_id"), 10, 64)
		if err != nil {
			return kerrors.BadRequest("INVALID_ARGUMENT", "rule_id must be a positive integer")
		}
		h := ctx.Middleware(func(c context.Context, in interface{}) (interface{}, error) {
			return svc.DeletePricingRule(c, ruleID)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})
}

func householdIDVar(ctx http.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Vars().Get("household_id"), 10, 64)
	if err != nil {
		return 0, kerrors.BadRequest("INVALID_ARGUMENT", "household_id must be a positive integer")
	}
	return id, nil
}

func customErrorEncoder(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	se := kerrors.FromError(err)
	status := stdhttp.StatusInternalServerError
	response := map[string]interface{}{
		"code":    status,
		"message": "internal server error",
	}

	if se != nil {
		status = mapErrorStatus(int(se.Code))
		response["code"] = se.Code
		response["reason"] = se.Reason
		response["message"] = se.Message
		if len(se.Metadata) > 0 {
			response["metadata"] = se.Metadata
		}
	} else if err != nil {
		response["message"] = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}

func mapErrorStatus(code int) int {
	if code >= 100 && code < 600 {
		return code
	}
	if code >= 140000 && code < 150000 {
		return stdhttp.StatusBadRequest
	}
	return stdhttp.StatusInternalServerError
}
