// Package es 提供了疾病目录在 Elasticsearch 中的索引与检索。
package es

import (
	"aqua-health-go/internal/config"
	"aqua-health-go/pkg/log"
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// DiseaseDocument 是疾病在索引中的文档结构，每种语言一份名称。
type DiseaseDocument struct {
	DiseaseID   string   `json:"disease_id"`
	Names       []string `json:"names"`
	Keywords    []string `json:"keywords"`
	Description string   `json:"description"`
	Symptoms    string   `json:"symptoms"`
}

// DiseaseIndex 封装了一个 Elasticsearch 索引。
type DiseaseIndex struct {
	client    *elasticsearch.Client
	indexName string
}

// NewDiseaseIndex 创建客户端并确保索引存在。
func NewDiseaseIndex(esCfg config.ElasticsearchConfig) (*DiseaseIndex, error) {
	cfg := elasticsearch.Config{
		Addresses: strings.Split(esCfg.Addresses, ","),
		Username:  esCfg.Username,
		Password:  esCfg.Password,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	idx := &DiseaseIndex{client: client, indexName: esCfg.IndexName}
	if err := idx.createIndexIfNotExists(); err != nil {
		return nil, err
	}
	return idx, nil
}

// createIndexIfNotExists 检查索引是否存在，如果不存在则创建它
func (i *DiseaseIndex) createIndexIfNotExists() error {
	res, err := i.client.Indices.Exists([]string{i.indexName})
	if err != nil {
		return fmt.Errorf("检查索引是否存在时出错: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		log.Infof("索引 '%s' 已存在", i.indexName)
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("检查索引是否存在时收到意外的状态码: %d", res.StatusCode)
	}

	// 名称与关键词含多种文字，使用 standard 分词器；disease_id 精确匹配
	mapping := `{
		"mappings": {
			"properties": {
				"disease_id":  { "type": "keyword" },
				"names":       { "type": "text", "analyzer": "standard" },
				"keywords":    { "type": "text", "analyzer": "standard" },
				"description": { "type": "text", "analyzer": "english" },
				"symptoms":    { "type": "text", "analyzer": "english" }
			}
		}
	}`
	res, err = i.client.Indices.Create(
		i.indexName,
		i.client.Indices.Create.WithBody(strings.NewReader(mapping)),
	)
	if err != nil {
		return fmt.Errorf("创建索引 '%s' 失败: %w", i.indexName, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		log.Errorf("创建索引 '%s' 时 Elasticsearch 返回错误: %s", i.indexName, res.String())
		return errors.New("创建索引时 Elasticsearch 返回错误")
	}
	log.Infof("索引 '%s' 创建成功", i.indexName)
	return nil
}

// IndexDiseases 以 disease_id 为文档 ID 写入全部疾病，重复执行会覆盖旧文档。
func (i *DiseaseIndex) IndexDiseases(ctx context.Context, docs []DiseaseDocument) error {
	for _, doc := range docs {
		body, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		req := esapi.IndexRequest{
			Index:      i.indexName,
			DocumentID: doc.DiseaseID,
			Body:       bytes.NewReader(body),
			Refresh:    "true",
		}
		res, err := req.Do(ctx, i.client)
		if err != nil {
			return fmt.Errorf("failed to index disease %s: %w", doc.DiseaseID, err)
		}
		if res.IsError() {
			msg := res.String()
			res.Body.Close()
			return fmt.Errorf("failed to index disease %s: %s", doc.DiseaseID, msg)
		}
		res.Body.Close()
	}
	log.Infof("已向索引 '%s' 写入 %d 种疾病", i.indexName, len(docs))
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source DiseaseDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search 对名称、关键词、描述和症状做 multi_match 检索，按相关度返回疾病 ID。
func (i *DiseaseIndex) Search(ctx context.Context, query string, size int) ([]string, error) {
	var buf bytes.Buffer
	esQuery := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"names^3", "keywords^2", "description", "symptoms"},
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}
	if err := json.NewEncoder(&buf).Encode(esQuery); err != nil {
		return nil, fmt.Errorf("failed to encode search query: %w", err)
	}

	res, err := i.client.Search(
		i.client.Search.WithContext(ctx),
		i.client.Search.WithIndex(i.indexName),
		i.client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search returned error: %s", res.String())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		ids = append(ids, hit.Source.DiseaseID)
	}
	return ids, nil
}
