// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"aqua-health-go/internal/model"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// KnowledgeRepository 接口定义了知识库表的持久化操作。
// 知识库只在启动时读取一次，读取后由内存中的不可变结构提供服务。
type KnowledgeRepository interface {
	AutoMigrate() error
	Count(ctx context.Context) (int64, error)
	Seed(ctx context.Context, symptoms []model.Symptom, diseases []model.Disease) error
	Load(ctx context.Context) ([]model.Symptom, []model.Disease, error)
}

// knowledgeRepository 是 KnowledgeRepository 接口的 GORM 实现。
type knowledgeRepository struct {
	db *gorm.DB
}

// NewKnowledgeRepository 创建一个新的 KnowledgeRepository 实例。
func NewKnowledgeRepository(db *gorm.DB) KnowledgeRepository {
	return &knowledgeRepository{db: db}
}

// AutoMigrate 创建或更新 kb_symptoms 与 kb_diseases 表。
func (r *knowledgeRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&model.SymptomRecord{}, &model.DiseaseRecord{})
}

// Count 返回疾病记录数。
func (r *knowledgeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.DiseaseRecord{}).Count(&n).Error
	return n, err
}

// Seed 在一个事务中写入全部症状和疾病，Position 记录声明顺序。
func (r *knowledgeRepository) Seed(ctx context.Context, symptoms []model.Symptom, diseases []model.Disease) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, s := range symptoms {
			rec := model.SymptomRecord{ID: s.ID, Position: i, Labels: s.Labels}
			if err := tx.Save(&rec).Error; err != nil {
				return fmt.Errorf("failed to save symptom %s: %w", s.ID, err)
			}
		}
		for i, d := range diseases {
			rec := model.NewDiseaseRecord(d, i)
			if err := tx.Save(&rec).Error; err != nil {
				return fmt.Errorf("failed to save disease %s: %w", d.ID, err)
			}
		}
		return nil
	})
}

// Load 按 Position 顺序读出全部症状和疾病。
func (r *knowledgeRepository) Load(ctx context.Context) ([]model.Symptom, []model.Disease, error) {
	var symptomRecs []model.SymptomRecord
	if err := r.db.WithContext(ctx).Order("position asc").Find(&symptomRecs).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load symptoms: %w", err)
	}
	var diseaseRecs []model.DiseaseRecord
	if err := r.db.WithContext(ctx).Order("position asc").Find(&diseaseRecs).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load diseases: %w", err)
	}

	symptoms := make([]model.Symptom, 0, len(symptomRecs))
	for _, rec := range symptomRecs {
		symptoms = append(symptoms, model.Symptom{ID: rec.ID, Labels: rec.Labels})
	}
	diseases := make([]model.Disease, 0, len(diseaseRecs))
	for _, rec := range diseaseRecs {
		diseases = append(diseases, rec.ToDisease())
	}
	return symptoms, diseases, nil
}
