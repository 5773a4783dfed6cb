package employee

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/audit"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/employee"
	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/user"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/besteffort"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/database"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/sse"
	"github.com/kitabonkesaar/attendance-app-saas/internal/repository/postgresql"
)

type Service struct {
	db           *database.DB
	employeeRepo employee.EmployeeRepository
	userRepo     user.UserRepository
	auditRepo    audit.AuditRepository
	hub          *sse.Hub
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	auditRepo audit.AuditRepository,
	hub *sse.Hub,
) *Service {
	return &Service{
		db:           db,
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		auditRepo:    auditRepo,
		hub:          hub,
	}
}

// Create implements employee.EmployeeService. The auth identity and
// the profile are created in one transaction so a conflict on either
// leaves nothing behind.
func (s *Service) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	hashStr := string(hash)

	var created employee.Employee
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx) //nolint:staticcheck // repository-wide tx key convention

		newUser, err := s.userRepo.Create(txCtx, user.User{
			Email:        req.Email,
			Name:         req.Name,
			PasswordHash: &hashStr,
			Role:         user.Role(req.Role),
		})
		if err != nil {
			return err
		}

		profile := employee.Employee{
			UserID:     newUser.ID,
			Code:       req.Code,
			Name:       req.Name,
			Email:      req.Email,
			Mobile:     req.Mobile,
			Position:   req.Position,
			Department: req.Department,
			Status:     employee.StatusActive,
		}
		if req.JoinDate != nil {
			d, _ := time.Parse(time.DateOnly, *req.JoinDate)
			profile.JoinDate = &d
		}

		created, err = s.employeeRepo.Create(txCtx, profile)
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.audit(ctx, audit.ActionEmployeeCreate, created.ID, map[string]interface{}{
		"code":  created.Code,
		"name":  created.Name,
		"email": created.Email,
		"role":  req.Role,
	})
	s.hub.Publish(sse.TopicEmployees, sse.Event{Event: "created", Data: created.ID})

	return employee.ToResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *Service) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e), nil
}

// Update implements employee.EmployeeService.
func (s *Service) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	changes := map[string]interface{}{}
	if req.Name != nil {
		changes["name"] = *req.Name
		e.Name = *req.Name
	}
	if req.Mobile != nil {
		changes["mobile"] = *req.Mobile
		e.Mobile = req.Mobile
	}
	if req.Position != nil {
		changes["position"] = *req.Position
		e.Position = req.Position
	}
	if req.Department != nil {
		changes["department"] = *req.Department
		e.Department = req.Department
	}
	if req.Status != nil {
		changes["status"] = *req.Status
		e.Status = employee.Status(*req.Status)
	}

	if err := s.employeeRepo.Update(ctx, e); err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.audit(ctx, audit.ActionEmployeeUpdate, e.ID, changes)
	s.hub.Publish(sse.TopicEmployees, sse.Event{Event: "updated", Data: e.ID})

	return employee.ToResponse(e), nil
}

// Delete implements employee.EmployeeService. The profile row goes;
// the auth identity is kept so past audit entries stay attributable.
func (s *Service) Delete(ctx context.Context, id string) error {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit(ctx, audit.ActionEmployeeDelete, id, map[string]interface{}{
		"code": e.Code,
		"name": e.Name,
	})
	s.hub.Publish(sse.TopicEmployees, sse.Event{Event: "deleted", Data: id})

	return nil
}

// List implements employee.EmployeeService.
func (s *Service) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeesResponse, error) {
	filter.Normalize()

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	resp := employee.ListEmployeesResponse{
		Employees: make([]employee.EmployeeResponse, 0, len(employees)),
		Total:     total,
		Page:      filter.Page,
		Limit:     filter.Limit,
	}
	for _, e := range employees {
		resp.Employees = append(resp.Employees, employee.ToResponse(e))
	}

	return resp, nil
}

func (s *Service) audit(ctx context.Context, action, entityID string, changes map[string]interface{}) {
	actorID, _ := ctx.Value(actorKey{}).(string)
	besteffort.Go(3*time.Second, "audit:"+action, func(ctx context.Context) error {
		return s.auditRepo.Append(ctx, audit.Entry{
			ActorID:  actorID,
			Action:   action,
			Entity:   "employee",
			EntityID: entityID,
			Changes:  changes,
		})
	})
}

type actorKey struct{}

// WithActor stamps the acting user id onto the context for audit
// attribution.
func WithActor(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorKey{}, actorID)
}
