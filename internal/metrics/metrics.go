package metrics

const Namespace = "snakebnb"
