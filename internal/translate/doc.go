// Package translate 封装符号消息的翻译服务：同步的渲染与编码入口、
// 会话绑定，以及带有存储与消息队列的异步批量翻译任务。
package translate
