package performance

import (
	"context"
	"hospital-lab-service/internal/app/contracts"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/dto/requests"
	"hospital-lab-service/internal/pkg/dto/responses"
	"hospital-lab-service/internal/pkg/exceptions"
	"hospital-lab-service/internal/pkg/utils"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type performanceUsecase struct {
	LabTestRepository contracts.LabTestRepository
	LabTechRepository contracts.LabTechRepository
	IdentityResolver  contracts.IdentityResolver
	RelationshipGuard contracts.RelationshipGuard
	Log               *zap.Logger
}

var (
	performanceUsecaseInstance contracts.PerformanceUsecase
	oncePerformanceUsecase     sync.Once
)

func NewPerformanceUsecase(
	labTestRepository contracts.LabTestRepository,
	labTechRepository contracts.LabTechRepository,
	identityResolver contracts.IdentityResolver,
	relationshipGuard contracts.RelationshipGuard,
	logger *zap.Logger,
) contracts.PerformanceUsecase {
	oncePerformanceUsecase.Do(func() {
		instance := &performanceUsecase{
			LabTestRepository: labTestRepository,
			LabTechRepository: labTechRepository,
			IdentityResolver:  identityResolver,
			RelationshipGuard: relationshipGuard,
			Log:               logger,
		}
		performanceUsecaseInstance = instance
	})
	return performanceUsecaseInstance
}

func (uc *performanceUsecase) FindLabTechPerformance(ctx context.Context, principal models.Principal, technicianID string, dateRange requests.DateRange) (*responses.PerformanceStats, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("performanceUsecase.FindLabTechPerformance called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTechnicianIDKey, technicianID),
	)

	query, err := uc.buildPerformanceQuery(ctx, principal, technicianID)
	if err != nil {
		return nil, err
	}
	query.CompletedFrom = dateRange.From
	query.CompletedTo = dateRange.To

	labTests, err := uc.LabTestRepository.FindCompletedByTechnician(ctx, query)
	if err != nil {
		uc.Log.Error("performanceUsecase.FindLabTechPerformance error fetching completed tests",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	stats := computeStats(labTests)
	stats.TechnicianID = technicianID

	uc.Log.Info("performanceUsecase.FindLabTechPerformance succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, stats.TotalTests),
	)
	return stats, nil
}

func (uc *performanceUsecase) FindLabTechBreakdown(ctx context.Context, principal models.Principal, technicianID string) ([]responses.TestTypeBreakdown, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("performanceUsecase.FindLabTechBreakdown called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTechnicianIDKey, technicianID),
	)

	query, err := uc.buildPerformanceQuery(ctx, principal, technicianID)
	if err != nil {
		return nil, err
	}

	labTests, err := uc.LabTestRepository.FindCompletedByTechnician(ctx, query)
	if err != nil {
		uc.Log.Error("performanceUsecase.FindLabTechBreakdown error fetching completed tests",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	breakdown := computeBreakdown(labTests)

	uc.Log.Info("performanceUsecase.FindLabTechBreakdown succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(breakdown)),
	)
	return breakdown, nil
}

// buildPerformanceQuery checks the caller may read the technician's stats and
// narrows doctors to the tests they ordered.
func (uc *performanceUsecase) buildPerformanceQuery(ctx context.Context, principal models.Principal, technicianID string) (models.PerformanceQuery, error) {
	requestID := utils.GetRequestID(ctx)
	var query models.PerformanceQuery

	identity, err := uc.IdentityResolver.Resolve(ctx, principal)
	if err != nil {
		return query, err
	}

	techID, err := primitive.ObjectIDFromHex(technicianID)
	if err != nil {
		return query, exceptions.ErrLabTechNotFound(err)
	}

	decision, err := uc.RelationshipGuard.Authorize(ctx, identity, models.LabTechResource(techID, constvars.ActionReadStats))
	if err != nil {
		return query, err
	}
	if !decision.Allowed {
		uc.Log.Warn("performanceUsecase relationship denied",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReasonKey, decision.Reason),
		)
		return query, exceptions.ErrLabTechAccessDenied(nil, decision.Reason)
	}

	technician, err := uc.LabTechRepository.FindByID(ctx, techID)
	if err != nil {
		return query, err
	}
	if technician == nil {
		return query, exceptions.ErrLabTechNotFound(nil)
	}

	query.TechnicianID = techID
	if identity.Role() == constvars.RoleDoctor {
		doctorID := identity.ProfileID
		query.OrderingDoctorID = &doctorID
	}
	return query, nil
}

// computeStats expects labTests sorted by completion time, newest first.
// Tests missing a timestamp count toward the total but not the averages.
func computeStats(labTests []models.LabTest) *responses.PerformanceStats {
	stats := &responses.PerformanceStats{
		TotalTests:  len(labTests),
		RecentTests: []responses.LabTest{},
	}

	var sum float64
	var timed int
	for i := range labTests {
		hours, ok := labTests[i].ProcessingHours()
		if !ok {
			continue
		}
		if timed == 0 || hours < stats.MinProcessingHours {
			stats.MinProcessingHours = hours
		}
		if timed == 0 || hours > stats.MaxProcessingHours {
			stats.MaxProcessingHours = hours
		}
		sum += hours
		timed++
	}
	if timed > 0 {
		stats.AvgProcessingHours = sum / float64(timed)
	}

	recent := labTests
	if len(recent) > constvars.PerformanceRecentTestsLimit {
		recent = recent[:constvars.PerformanceRecentTestsLimit]
	}
	stats.RecentTests = utils.ConvertLabTestsToResponse(recent)
	return stats
}

func computeBreakdown(labTests []models.LabTest) []responses.TestTypeBreakdown {
	type bucket struct {
		count int
		timed int
		sum   float64
	}
	buckets := make(map[string]*bucket)
	for i := range labTests {
		b, ok := buckets[labTests[i].TestName]
		if !ok {
			b = &bucket{}
			buckets[labTests[i].TestName] = b
		}
		b.count++
		if hours, ok := labTests[i].ProcessingHours(); ok {
			b.sum += hours
			b.timed++
		}
	}

	breakdown := make([]responses.TestTypeBreakdown, 0, len(buckets))
	for testName, b := range buckets {
		entry := responses.TestTypeBreakdown{TestName: testName, Count: b.count}
		if b.timed > 0 {
			entry.AvgCompletionHours = b.sum / float64(b.timed)
		}
		breakdown = append(breakdown, entry)
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		return breakdown[i].TestName < breakdown[j].TestName
	})
	return breakdown
}
