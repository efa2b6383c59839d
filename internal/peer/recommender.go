// Package peer compares a taxpayer's settlement with reference averages for
// their salary band and produces advisory text.
package peer

import (
	"fmt"

	"github.com/rpgo/yearend-calculator/internal/calculation"
	"github.com/rpgo/yearend-calculator/internal/domain"
	"github.com/rpgo/yearend-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// Shares of the peer average below which an insight is emitted
var (
	pensionShare = decimal.NewFromFloat(0.8)
	medicalShare = decimal.NewFromFloat(0.5)
	refundShare  = decimal.NewFromFloat(0.7)
)

// DefaultBuckets returns the built-in reference data
func DefaultBuckets() []domain.PeerBucket {
	bucket := func(lower, upper, pension, medical, card, refund int64) domain.PeerBucket {
		return domain.PeerBucket{
			Key:                  fmt.Sprintf("%d-%d", lower/10_000, upper/10_000),
			Lower:                decimal.NewFromInt(lower),
			Upper:                decimal.NewFromInt(upper),
			AveragePension:       decimal.NewFromInt(pension),
			AverageMedical:       decimal.NewFromInt(medical),
			AverageCardDeduction: decimal.NewFromInt(card),
			AverageRefund:        decimal.NewFromInt(refund),
		}
	}
	return []domain.PeerBucket{
		bucket(30_000_000, 40_000_000, 2_400_000, 800_000, 2_000_000, 280_000),
		bucket(40_000_000, 50_000_000, 3_200_000, 1_000_000, 2_300_000, 380_000),
		bucket(50_000_000, 70_000_000, 4_000_000, 1_200_000, 2_500_000, 520_000),
		bucket(70_000_000, 100_000_000, 5_000_000, 1_500_000, 2_800_000, 680_000),
	}
}

// Recommender matches a taxpayer to a salary bucket
type Recommender struct {
	rules   *domain.RuleTable
	buckets []domain.PeerBucket
}

// NewRecommender creates a recommender with the built-in reference data
func NewRecommender(rules *domain.RuleTable) *Recommender {
	return NewRecommenderWithBuckets(rules, DefaultBuckets())
}

// NewRecommenderWithBuckets creates a recommender with caller-supplied reference data
func NewRecommenderWithBuckets(rules *domain.RuleTable, buckets []domain.PeerBucket) *Recommender {
	return &Recommender{rules: rules, buckets: append([]domain.PeerBucket(nil), buckets...)}
}

// FindBucket returns the bucket whose range contains salary, or nil
func (r *Recommender) FindBucket(salary decimal.Decimal) *domain.PeerBucket {
	for i := range r.buckets {
		if r.buckets[i].Contains(salary) {
			b := r.buckets[i]
			return &b
		}
	}
	return nil
}

// Recommend returns the matching bucket and insights. A salary outside every
// bucket yields nil and an empty list.
func (r *Recommender) Recommend(input *domain.TaxInput, result *domain.TaxResult) (*domain.PeerBucket, []string) {
	insights := []string{}
	bucket := r.FindBucket(input.Income.Salary)
	if bucket == nil {
		return nil, insights
	}

	pension := input.Pension.Total()
	if pension.LessThan(bucket.AveragePension.Mul(pensionShare)) {
		gap := bucket.AveragePension.Sub(pension)
		gain := gap.Mul(calculation.PensionCreditRate(r.rules.Pension, input.Income.Salary))
		insights = append(insights, fmt.Sprintf(
			"Peers earning %s contribute %s to pensions on average. Adding %s could raise your refund by about %s.",
			bucketLabel(bucket), money.Format(bucket.AveragePension), money.Format(gap), money.Format(gain)))
	}

	if input.Medical.Total.LessThan(bucket.AverageMedical.Mul(medicalShare)) {
		insights = append(insights,
			"Your medical expenses look low for your salary band. Glasses, dental care and health checkups also count.")
	}

	if result.RefundOrPayment.LessThan(bucket.AverageRefund.Mul(refundShare)) {
		insights = append(insights, fmt.Sprintf(
			"The average refund for peers earning %s is %s. Run the suggestions to find ways to claim more.",
			bucketLabel(bucket), money.Format(bucket.AverageRefund)))
	}
	return bucket, insights
}

func bucketLabel(b *domain.PeerBucket) string {
	return money.Format(b.Lower) + "-" + money.Format(b.Upper)
}
