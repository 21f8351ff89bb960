// Package api 暴露 REST 接口，供外部宿主提交翻译请求、管理会话
// 与查询批量任务。
package api
